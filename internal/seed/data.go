package seed

import "github.com/vytor/ncertflash/internal/models"

type subjectSeed struct {
	Name     string
	Code     string
	BookCode string
}

// class6Subjects are the Class 6 NCERT books. BookCode is the prefix of the
// chapter PDF names on ncert.nic.in.
var class6Subjects = []subjectSeed{
	{Name: "Mathematics", Code: "MATH", BookCode: "femh1"},
	{Name: "Science", Code: "SCI", BookCode: "fesc1"},
	{Name: "English", Code: "ENG", BookCode: "fehl1"},
	{Name: "Hindi", Code: "HIN", BookCode: "fhvs1"},
	{Name: "Social Science", Code: "SST", BookCode: "fess1"},
}

var class6MathChapters = []string{
	"Patterns in Mathematics",
	"Lines and Angles",
	"Number Play",
	"Data Handling and Presentation",
	"Prime Time",
	"Perimeter and Area",
	"Fractions",
	"Playing with Constructions",
	"Symmetry",
	"The Other Side of Zero",
}

const fractionsChapter = 7

var fractionQuestions = []models.Question{
	{
		Question:      "Ram has ½ of a pizza. If Shyam gives him ¼ more, how much pizza does Ram have now?",
		Options:       []string{"½", "¾", "⅔", "1"},
		CorrectAnswer: 1,
		Explanation:   "To add fractions with different denominators, find the LCM. LCM of 2 and 4 is 4. Convert ½ to 2/4. Now add: 2/4 + 1/4 = 3/4.",
		BloomLevel:    "apply",
		Difficulty:    models.DifficultyMedium,
		XPReward:      25,
	},
	{
		Question:      "What happens when we multiply a fraction by 1?",
		Options:       []string{"It becomes 0", "It stays the same", "It becomes 1", "It doubles"},
		CorrectAnswer: 1,
		Explanation:   "Any number multiplied by 1 remains unchanged. This is called the identity property of multiplication.",
		BloomLevel:    "understand",
		Difficulty:    models.DifficultyEasy,
		XPReward:      15,
	},
	{
		Question:      "Compare: Which is greater - ⅔ or ¾?",
		Options:       []string{"⅔ is greater", "¾ is greater", "They are equal", "Cannot compare"},
		CorrectAnswer: 1,
		Explanation:   "Convert to common denominator (12): ⅔ = 8/12, ¾ = 9/12. Since 9/12 > 8/12, therefore ¾ is greater.",
		BloomLevel:    "analyze",
		Difficulty:    models.DifficultyMedium,
		XPReward:      30,
	},
	{
		Question:      "In the fraction ⅝, what is the denominator?",
		Options:       []string{"5", "8", "3", "13"},
		CorrectAnswer: 1,
		Explanation:   "The denominator is the bottom number in a fraction. It tells us how many equal parts the whole is divided into.",
		BloomLevel:    "remember",
		Difficulty:    models.DifficultyEasy,
		XPReward:      10,
	},
	{
		Question:      "A recipe needs ¾ cup of sugar. You only have ½ cup. Is this enough?",
		Options:       []string{"Yes, it is enough", "No, need ¼ more", "No, need ½ more", "Cannot determine"},
		CorrectAnswer: 1,
		Explanation:   "¾ - ½ = 3/4 - 2/4 = ¼. You need ¼ cup more sugar to complete the recipe.",
		BloomLevel:    "evaluate",
		Difficulty:    models.DifficultyHard,
		XPReward:      40,
	},
}

var sampleDeck = []models.Flashcard{
	{
		Front:      "What is the Fundamental Theorem of Arithmetic?",
		Back:       "Every composite number can be expressed as a product of prime numbers in a unique way (ignoring the order of factors).",
		Subject:    "Mathematics",
		Chapter:    "Real Numbers",
		Difficulty: models.DifficultyMedium,
	},
	{
		Front:      "What is photosynthesis?",
		Back:       "Photosynthesis is the process by which plants convert light energy, water, and carbon dioxide into glucose and oxygen. It occurs mainly in leaves.",
		Subject:    "Science",
		Chapter:    "Life Processes",
		Difficulty: models.DifficultyEasy,
	},
	{
		Front:      "What is the quadratic formula?",
		Back:       "x = (-b ± √(b²-4ac)) / 2a\n\nThis formula gives the solutions to ax² + bx + c = 0",
		Subject:    "Mathematics",
		Chapter:    "Quadratic Equations",
		Difficulty: models.DifficultyMedium,
	},
	{
		Front:      "What is Ohm's Law?",
		Back:       "V = IR\n\nVoltage (V) equals Current (I) multiplied by Resistance (R).\n\nUnit: Voltage in Volts, Current in Amperes, Resistance in Ohms",
		Subject:    "Science",
		Chapter:    "Electricity",
		Difficulty: models.DifficultyEasy,
	},
	{
		Front:      "What is nationalism?",
		Back:       "Nationalism is a political ideology where people who share a common language, culture, and history believe they should form an independent nation-state. It was a major force in 19th century Europe.",
		Subject:    "Social Science",
		Chapter:    "Rise of Nationalism",
		Difficulty: models.DifficultyMedium,
	},
	{
		Front:      "What is a balanced chemical equation?",
		Back:       "A balanced chemical equation has equal numbers of atoms of each element on both sides (reactants and products).\n\nExample: 2H₂ + O₂ → 2H₂O",
		Subject:    "Science",
		Chapter:    "Chemical Reactions",
		Difficulty: models.DifficultyEasy,
	},
	{
		Front:      "What is the distance formula?",
		Back:       "d = √[(x₂-x₁)² + (y₂-y₁)²]\n\nThis formula calculates the distance between two points (x₁, y₁) and (x₂, y₂) in a coordinate plane.",
		Subject:    "Mathematics",
		Chapter:    "Coordinate Geometry",
		Difficulty: models.DifficultyMedium,
	},
	{
		Front:      "What are the three laws of motion?",
		Back:       "1. Law of Inertia: An object remains at rest or in uniform motion unless acted upon by an external force.\n\n2. F = ma: Force equals mass times acceleration.\n\n3. Action-Reaction: For every action, there is an equal and opposite reaction.",
		Subject:    "Science",
		Chapter:    "Force and Motion",
		Difficulty: models.DifficultyHard,
	},
}
