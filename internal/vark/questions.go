package vark

// Question is a single questionnaire item with one option per style.
type Question struct {
	ID       int              `json:"id"`
	Question string           `json:"question"`
	Options  map[Style]string `json:"options"`
}

// Questionnaire is the fixed ten-item assessment.
var Questionnaire = []Question{
	{
		ID:       1,
		Question: "When learning something new, you prefer to:",
		Options: map[Style]string{
			Visual:      "Watch a video or look at diagrams",
			Auditory:    "Listen to someone explain it",
			Reading:     "Read about it in a textbook",
			Kinesthetic: "Try it yourself hands-on",
		},
	},
	{
		ID:       2,
		Question: "To remember a phone number, you would:",
		Options: map[Style]string{
			Visual:      "Picture the numbers in your mind",
			Auditory:    "Say the numbers out loud repeatedly",
			Reading:     "Write the numbers down",
			Kinesthetic: "Remember the pattern of pressing buttons",
		},
	},
	{
		ID:       3,
		Question: "When assembling furniture, you prefer to:",
		Options: map[Style]string{
			Visual:      "Look at the pictures and diagrams",
			Auditory:    "Have someone read the instructions to you",
			Reading:     "Read the written instructions carefully",
			Kinesthetic: "Just start putting it together",
		},
	},
	{
		ID:       4,
		Question: "You remember people best by their:",
		Options: map[Style]string{
			Visual:      "Face or appearance",
			Auditory:    "Voice or what they said",
			Reading:     "Name (written)",
			Kinesthetic: "Actions or what you did together",
		},
	},
	{
		ID:       5,
		Question: "In your free time, you most enjoy:",
		Options: map[Style]string{
			Visual:      "Watching movies or looking at art",
			Auditory:    "Listening to music or podcasts",
			Reading:     "Reading books or articles",
			Kinesthetic: "Sports or hands-on hobbies",
		},
	},
	{
		ID:       6,
		Question: "When giving directions, you would:",
		Options: map[Style]string{
			Visual:      "Draw a map or show pictures",
			Auditory:    "Verbally explain the route",
			Reading:     "Write down the directions",
			Kinesthetic: "Walk with them to show the way",
		},
	},
	{
		ID:       7,
		Question: "When studying for an exam, you prefer to:",
		Options: map[Style]string{
			Visual:      "Use charts, diagrams, and colors",
			Auditory:    "Discuss topics with others or record notes",
			Reading:     "Make detailed written notes",
			Kinesthetic: "Practice problems or create models",
		},
	},
	{
		ID:       8,
		Question: "You find it easier to understand:",
		Options: map[Style]string{
			Visual:      "Graphs and flowcharts",
			Auditory:    "Lectures and discussions",
			Reading:     "Textbooks and written materials",
			Kinesthetic: "Labs and practical experiments",
		},
	},
	{
		ID:       9,
		Question: "When cooking a new recipe, you would:",
		Options: map[Style]string{
			Visual:      "Look at pictures of each step",
			Auditory:    "Listen to someone explain how to make it",
			Reading:     "Follow the written recipe carefully",
			Kinesthetic: "Just start cooking and figure it out",
		},
	},
	{
		ID:       10,
		Question: "You would rather attend:",
		Options: map[Style]string{
			Visual:      "An art exhibition or movie",
			Auditory:    "A concert or lecture",
			Reading:     "A book reading or library event",
			Kinesthetic: "A dance class or sports event",
		},
	},
}
