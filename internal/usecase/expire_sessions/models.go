package expire_sessions

// Response результат одного прохода уборщика
type Response struct {
	ExpiredCount int      `json:"expired_count"`
	Tokens       []string `json:"tokens,omitempty"`
}
