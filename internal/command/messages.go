package command

const (
	messageVerifyConsent = "**You're not verified!**\n" +
		"You need to verify yourself to use this command.\n" +
		"`1.` This verification is to make you aware of the terms of service for using the bot.\n" +
		"`2.` By verifying, you give the bot the permission to store information of your account available publicly in our database. ID, name, avatar etc.\n" +
		"`3.` You can request for removal at any given time; by doing so, you would no longer be able to use the bot and its services.\n" +
		"If you agree to the above points, you can click the confirm button below to verify yourself."
	messageVerified        = "You're now verified!"
	messageVerifyCancelled = "You've cancelled the verification process."

	messageStoryConsent = "**Story mode**\n" +
		"You are trying to activate the story mode of the bot.\n" +
		"After initiating, be prepared to work under limited time.\n" +
		"If you fail to clear one mission, you will fail and you will have to start over.\n" +
		"Are you sure you want to start the story mode?"
	messageStoryActivated        = "Story mode has been activated!"
	messageStoryCancelled        = "Story mode has been cancelled."
	messageStoryNotStartedFormat = "You have not started the story mode yet. Please use `%sbegin` to start the story mode."
	messageMissionFormat         = "**%s**\n%s\n-# Mission %d/%d"

	messageQuizPromptFormat   = "**Guess The Universe**\n**%s**: %s\n%s"
	messageQuizCorrectFormat  = "You got it! It was %s"
	messageQuizQuitFormat     = "You quit the game. The answer was %s\nAlternate answers: %s"
	messageQuizTimeout        = "You took too long to answer. Try again."
	messageQuizAlreadyRunning = "You already have a game running in this channel. Finish it first!"
	messageWrongGuess         = "Wrong, maybe try again!"

	messageTookTooLong     = "You took too long to respond."
	messageFactUnavailable = "Couldn't fetch a space fact right now. Try again later."
	messageGenericFailure  = "Something went wrong while running that command."
)
