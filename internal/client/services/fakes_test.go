package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
)

type call struct {
	path string
	opts client.RequestOptions
}

type response struct {
	data string
	err  error
}

// fakeClient answers by path and records every call.
type fakeClient struct {
	responses map[string]response
	calls     []call
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]response{}}
}

func (f *fakeClient) on(path, data string, err error) *fakeClient {
	f.responses[path] = response{data: data, err: err}
	return f
}

func (f *fakeClient) Request(_ context.Context, path string, opts client.RequestOptions) (json.RawMessage, error) {
	f.calls = append(f.calls, call{path: path, opts: opts})
	r, ok := f.responses[path]
	if !ok {
		return nil, errors.New("unexpected path " + path)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.data == "" {
		return nil, nil
	}
	return json.RawMessage(r.data), nil
}

func (f *fakeClient) Do(ctx context.Context, path string, opts client.RequestOptions, out any) error {
	data, err := f.Request(ctx, path, opts)
	if err != nil || data == nil || out == nil {
		return err
	}
	return json.Unmarshal(data, out)
}

type fakeSession struct {
	token    string
	email    string
	clearErr error
}

func (s *fakeSession) Token() (string, bool) { return s.token, s.token != "" }

func (s *fakeSession) SetToken(_ context.Context, token string) error {
	s.token = token
	return nil
}

func (s *fakeSession) ClearToken(context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	return nil
}

func (s *fakeSession) IdentityEmail() (string, bool) { return s.email, s.email != "" }

func (s *fakeSession) SetIdentityEmail(_ context.Context, email string) error {
	s.email = email
	return nil
}

func (s *fakeSession) ClearIdentityEmail(context.Context) error {
	s.email = ""
	return nil
}
