package todosdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 422 when request fields fail
// validation.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a new password account.
type RegisterRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// TokenResponse is returned by password login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`

	RefreshExpiresIn int `json:"refresh_expires_in"`
}

// RefreshRequest carries the refresh token in a JSON body. The refresh
// endpoint also accepts the refresh_token form field or cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ============================================================================
// User Types
// ============================================================================

type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChangePasswordRequest verifies the current password before replacing it.
type ChangePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

// ============================================================================
// Todo Types
// ============================================================================

// TodoRequest is used for create and full replacement. Tags holds tag ids.
type TodoRequest struct {
	Title       string   `json:"title" example:"Buy groceries"`
	Description string   `json:"description" example:"Milk, Bread, Eggs"`
	Priority    int      `json:"priority" example:"2"`
	Complete    bool     `json:"complete"`
	Tags        []string `json:"tags,omitempty"`
}

type TodoResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    int           `json:"priority"`
	Complete    bool          `json:"complete"`
	OwnerID     string        `json:"owner_id"`
	Tags        []TagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TodoFilter narrows GET /v1/todos. Zero values mean "no filter".
type TodoFilter struct {
	Complete *bool
	Priority int
	Search   string
	Limit    int
	Offset   int
}

// BulkDeleteResponse reports how many todos a bulk delete removed.
type BulkDeleteResponse struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// ============================================================================
// Tag Types
// ============================================================================

type TagRequest struct {
	Name string `json:"name"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ============================================================================
// GraphQL Types
// ============================================================================

type GraphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is served by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
