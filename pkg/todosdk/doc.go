/*
Package todosdk is the Go client for the todo service, and the home of the
request and response types the server itself speaks.

# SDKClient vs Session

  - SDKClient: unauthenticated calls (register, login, refresh, health)
  - Session: authenticated calls with automatic access token refresh

	client := todosdk.NewSDKClient("http://localhost:8080")

	_, err := client.Register(ctx, todosdk.RegisterRequest{...})
	session, err := client.AuthenticateWithPassword(ctx, "alice", "password123")

	todo, err := session.CreateTodo(ctx, todosdk.TodoRequest{Title: "Buy milk", ...})
	todos, err := session.ListTodos(ctx, todosdk.TodoFilter{Search: "milk"})

# Errors

Non-2xx responses are returned as *APIError carrying the status code, the
machine readable code and the description sent by the server:

	var apiErr *todosdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// log in again
	}
*/
package todosdk
