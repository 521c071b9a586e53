package constants

// Client lifecycle stages (client_status). Transitions step forward
// except the explicit cancel actions, which step back exactly one stage.
const (
	ClientUnassigned = 1
	ClientAssigned   = 2
	ClientConverted  = 3
	ClientAppointed  = 4
	ClientGraduated  = 5
)

// Contract process (client_process_status).
const (
	ProcessOpen   = 1
	ProcessClosed = 2
)

// Payment categories.
const (
	PaymentDeposit = 1
	PaymentBalance = 2
	PaymentOther   = 3
)

// Gender encoding shared by users and clients.
const (
	GenderMale   = 1
	GenderFemale = 2
)
