package email

const (
	subjectContactNotificationFmt = "New contact submission: %s"
	subjectContactAutoReply       = "Thank you for contacting us"
)
