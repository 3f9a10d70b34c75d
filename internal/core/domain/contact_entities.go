package domain

// AgentContactRequest - данные формы обращения к агенту объявления
type AgentContactRequest struct {
	LookingTo   string
	Name        string
	FromAddress string
	FromPhone   string
	Message     string
}
