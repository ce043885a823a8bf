package memberservice

// SubscriptionStatus статус абонемента участника
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionFrozen    SubscriptionStatus = "frozen"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Member модель участника из MemberService
type Member struct {
	ID                 int64              `json:"id"`
	FullName           string             `json:"full_name"`
	Email              string             `json:"email"`
	Phone              *string            `json:"phone,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
}

// HasActiveSubscription возвращает true, если участник может бронировать занятия
func (m *Member) HasActiveSubscription() bool {
	return m.SubscriptionStatus == SubscriptionActive
}

// ErrorResponse модель ошибки от MemberService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
