package telegram

const (
	mainMenuText = "<b>Moscow Zoo</b>\nFind out which animal is your totem and how to become its guardian."

	helpText = "This is a friendly and harmless bot. Commands:\n" +
		"/start - main menu\n" +
		"/quiz - start the quiz\n" +
		"/result - show your totem animal\n" +
		"/stats - most popular animals\n" +
		"/info - learn about the zoo\n" +
		"After the quiz you can send a message starting with \"Feedback\" to tell us what you think."

	infoText = "Learn more about the zoo! This bot belongs to Moscow Zoo. " +
		"It introduces people to the guardianship program through a fun quiz that determines their totem animal."

	defaultResponseText = "Sorry, I don't understand your request.\nPlease select a command from the menu or type /start"

	quizStartText = "Attention! The quiz begins now!"

	noQuizText = "There is no quiz in progress. Press QUIZ in the menu to start."

	quizBrokenText = "Something went wrong with the quiz, please try again later."

	takeQuizFirstText = "Take the quiz to receive results."

	resultReadyText = "<b>Congratulations, you've completed the quiz!</b>\n" +
		"Based on your answers we have chosen a symbol for you and are ready to reveal it."

	nextStepsText = "<b>You have come a long way, only one step remains! But choosing is hard...</b>"

	shareResultText = "Now that you have your result, share it with friends by forwarding this message."

	guardianText = "Becoming a guardian means supporting an animal of the zoo. " +
		"To forward your quiz results to the zoo specialists, send the word <b>Confirm</b>.\n" +
		"e-mail: opeka@moscow.zoo"
)
