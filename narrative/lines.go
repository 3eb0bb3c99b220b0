package narrative

import "github.com/lixenwraith/sisyphus/parameter"

var recoveryLines = [parameter.RecoveryLines]string{
	"The gods demand another ascent.",
	"The boulder awaits. Again.",
	"Your strength returns. The cycle continues.",
	"You gather yourself for another push.",
	"Rest is fleeting. The hill calls.",
}

var nearGoalLines = [parameter.NearGoalLines]string{
	"You almost believed.",
	"Freedom was never yours.",
	"The summit recedes. It always does.",
	"So close. Yet so far.",
	"Hope is the cruelest punishment of all.",
}

var mitigationLines = [parameter.MitigationLines]string{
	"Your will becomes iron. The boulder cannot weaken you. Not yet.",
	"You are trickery incarnate. The stone's weight no longer binds you.",
	"By cunning and wit, you preserve yourself. The gods' tools grow dull.",
}

var speedLines = [parameter.SpeedLines]string{
	"You have provoked the gods! They accelerate your eternal torment.",
	"The gods mock your sacrifice. Time itself bends against you.",
	"Your defiance amuses them. The pace of eternity quickens.",
}

var resetLines = [parameter.ResetLines]string{
	"The gods smile upon your submission. All is forgotten. All must be repeated.",
	"You stand at the base once more. Older. Wearier. Wiser? Perhaps not.",
	"The cycle resets. Sisyphus begins again. Will this time be different?",
}

var blessingLines = [parameter.BlessingLines]string{
	"The gods smile upon you! Your next %.0f pushes drain no endurance!",
	"A moment of mercy. The boulder lightens for %.0f pushes.",
	"Divine favor! The weight lifts from your shoulders, briefly.",
}

var momentumLines = [parameter.MomentumLines]string{
	"The boulder seizes control! %.0f automated pushes ensue!",
	"The gods mock your effort. The boulder moves itself.",
	"A curse of momentum! The stone rolls of its own will.",
}

var slipperyLines = [parameter.SlipperyLines]string{
	"The boulder becomes treacherous! The next %.0f pushes drain 3x endurance!",
	"Cursed moisture! Your grip weakens. 3x drain for %.0f pushes.",
	"The boulder is slick with divine oil. Push harder! (3x cost)",
}

var graceLines = [parameter.GraceLines]string{
	"Grace descends. The gods restore your strength (%.0f).",
	"A brief respite. Strength returns to weary limbs (%.0f).",
	"The gods take pity. For now. (%.0f)",
}

var surgeLines = [parameter.SurgeLines]string{
	"A surge of primal strength! Your next %.0f pushes are 2x stronger!",
	"Godly vigor flows through you. %.0f enhanced pushes await.",
	"Herculean power! %.0f pushes worth double the effort.",
}

var malfunctionLines = [parameter.MalfunctionLines]string{
	"The boulder crumbles! Lost %.0fft of progress!",
	"Catastrophic failure! %.0fft vanishes in an instant!",
	"The gods mock your labor. %.0fft erased. Start again.",
}

var milestoneLines = [len(parameter.Milestones)]string{
	"100 feet. You are making progress. Or are the gods merely toying with you?",
	"250 feet. Halfway there. The air grows thin. Your resolve grows thinner.",
	"400 feet. So close. So very close. Can you taste freedom?",
}

// rejectLines is indexed by upgrade kind, then by rejection reason
var rejectLines = [2][2]string{
	{"You are not high enough level.", "Your cunning has reached its peak. Even the gods cannot grant more."},
	{"You are not high enough level to provoke the gods.", "The gods have no more torment to give."},
}

// cosmeticNames follows the simulation's unlock table order
var cosmeticNames = [...]string{
	"Warrior Sisyphus",
	"Spectral Sisyphus",
	"Titan Sisyphus",
	"Cursed Sisyphus",
}
