package llm

import "context"

// UnconfiguredProvider stands in when no usable provider could be built.
// Every call fails with the original configuration error and no network
// traffic, so the chat can show the problem in place of a reply.
type UnconfiguredProvider struct {
	err error
}

// Unconfigured returns a Provider that always fails with err.
func Unconfigured(err error) *UnconfiguredProvider {
	if err == nil {
		err = &ErrConfiguration{Msg: "LLM provider is not configured"}
	}
	return &UnconfiguredProvider{err: err}
}

func (u *UnconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, u.err
}

func (u *UnconfiguredProvider) ModelID() string {
	return "unconfigured"
}

// Err returns the error every call fails with.
func (u *UnconfiguredProvider) Err() error {
	return u.err
}
