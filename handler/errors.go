package handler

import "errors"

var (
	// ErrGuildRepositoryRequired is returned when a guild repository is not provided.
	ErrGuildRepositoryRequired = errors.New("guild repository required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrGatewayRequired is returned when a gateway is not provided.
	ErrGatewayRequired = errors.New("gateway required")

	// ErrAssistantRequired is returned when an assistant is not provided.
	ErrAssistantRequired = errors.New("assistant required")

	// ErrUnknownRequest is returned by Dispatch for an unsupported request.
	ErrUnknownRequest = errors.New("unknown request")
)

// User-facing messages.
const (
	MsgQueryRequired    = "Please provide a search query."
	MsgExplainRequired  = "Please provide a query to explain."
	MsgAIKeyRequired    = "AI enhancement requires an OpenAI API key. Use the `!setapikey` command to configure it."
	MsgSearchFailed     = "An error occurred while searching. Please try again later."
	MsgInvalidKeyFormat = "Invalid API key format. OpenAI API keys should start with 'sk-'."
	MsgKeyRejected      = "Invalid OpenAI API key. Please check your key and try again."
	MsgKeySet           = "OpenAI API key has been set successfully! You can now use AI-enhanced search features."
	MsgKeySetFailed     = "An error occurred while setting the API key. Please try again later."
	MsgKeyRemoved       = "OpenAI API key has been removed. AI-enhanced features are now disabled."
	MsgKeyRemoveFailed  = "An error occurred while removing the API key. Please try again later."
)
