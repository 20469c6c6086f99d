package constants

const (
	// ContextKeyUser is the gin context key holding the authenticated *models.User.
	ContextKeyUser = "current_user"

	// SessionCookieName names the optional cookie session.
	SessionCookieName = "teamly_session"
	// SessionKeyToken is the session field carrying the bearer token.
	SessionKeyToken = "access_token"

	// TokenType is reported in login responses.
	TokenType = "bearer"

	// MaxSuggestedTasks caps how many drafts a single suggestion request returns.
	MaxSuggestedTasks = 20
	// MaxSuggestionTextLength bounds the text sent for task suggestions.
	MaxSuggestionTextLength = 4000
)
