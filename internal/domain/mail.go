package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AppointmentBookedMailData struct {
	Name          string `json:"name"`
	Service       string `json:"service"`
	AssignedStaff string `json:"assignedStaff"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
