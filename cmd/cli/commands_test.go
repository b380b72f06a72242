package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	apiv1 "github.com/and161185/realm-accounts/internal/api/v1"
	"google.golang.org/grpc"
)

type fakeClient struct {
	register *apiv1.RegisterRequest
	login    *apiv1.LoginRequest
	passwd   *apiv1.ChangePasswordRequest
	email    *apiv1.ChangeEmailRequest
	profile  *apiv1.ProfileResponse
	err      error
}

func (f *fakeClient) Register(_ context.Context, in *apiv1.RegisterRequest, _ ...grpc.CallOption) (*apiv1.RegisterResponse, error) {
	f.register = in
	if f.err != nil {
		return nil, f.err
	}
	return &apiv1.RegisterResponse{AccountID: 5}, nil
}

func (f *fakeClient) Login(_ context.Context, in *apiv1.LoginRequest, _ ...grpc.CallOption) (*apiv1.LoginResponse, error) {
	f.login = in
	if f.err != nil {
		return nil, f.err
	}
	return &apiv1.LoginResponse{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
		Account:     apiv1.AccountInfo{ID: 5, Username: strings.ToUpper(in.Username)},
	}, nil
}

func (f *fakeClient) ChangePassword(_ context.Context, in *apiv1.ChangePasswordRequest, _ ...grpc.CallOption) (*apiv1.ChangePasswordResponse, error) {
	f.passwd = in
	return &apiv1.ChangePasswordResponse{}, f.err
}

func (f *fakeClient) ChangeEmail(_ context.Context, in *apiv1.ChangeEmailRequest, _ ...grpc.CallOption) (*apiv1.ChangeEmailResponse, error) {
	f.email = in
	return &apiv1.ChangeEmailResponse{}, f.err
}

func (f *fakeClient) Profile(context.Context, *apiv1.ProfileRequest, ...grpc.CallOption) (*apiv1.ProfileResponse, error) {
	return f.profile, f.err
}

// stubPasswords feeds answers to successive terminal prompts.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestCmdRegister(t *testing.T) {
	stubPasswords(t, "hunter22", "hunter22")
	f := &fakeClient{}
	var out bytes.Buffer

	err := cmdRegister(context.Background(), f, []string{"-u", "alice", "-email", "a@example.com"}, &out)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if f.register.Username != "alice" || f.register.Password != "hunter22" || f.register.Email != "a@example.com" {
		t.Fatalf("request mismatch: %+v", f.register)
	}
	if !strings.Contains(out.String(), "account 5 created") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestCmdRegister_MismatchAndMissingFlags(t *testing.T) {
	stubPasswords(t, "one", "two")
	f := &fakeClient{}

	err := cmdRegister(context.Background(), f, []string{"-u", "alice", "-email", "a@example.com"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("want mismatch error, got %v", err)
	}
	if f.register != nil {
		t.Fatalf("must not call the server")
	}

	if err := cmdRegister(context.Background(), f, []string{"-u", "alice"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("want error without -email")
	}
}

func TestCmdLogin_SavesToken(t *testing.T) {
	_ = withTmpConfig(t)
	f := &fakeClient{}
	var out bytes.Buffer

	if err := cmdLogin(context.Background(), f, []string{"-u", "alice", "-p", "secret"}, &out); err != nil {
		t.Fatalf("login: %v", err)
	}
	if f.login.Password != "secret" {
		t.Fatalf("password flag not used")
	}
	tok, err := loadToken()
	if err != nil || tok != "tok" {
		t.Fatalf("token not saved: %q %v", tok, err)
	}
	if !strings.Contains(out.String(), "ALICE") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestCmdLogin_ErrorLeavesNoToken(t *testing.T) {
	_ = withTmpConfig(t)
	f := &fakeClient{err: errors.New("denied")}

	if err := cmdLogin(context.Background(), f, []string{"-u", "alice", "-p", "secret"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("want error")
	}
	if _, err := loadToken(); err == nil {
		t.Fatalf("token must not be saved on failure")
	}
}

func TestCmdPasswd(t *testing.T) {
	stubPasswords(t, "old-pass", "new-pass", "new-pass")
	f := &fakeClient{}

	if err := cmdPasswd(context.Background(), f, nil, &bytes.Buffer{}); err != nil {
		t.Fatalf("passwd: %v", err)
	}
	if f.passwd.CurrentPassword != "old-pass" || f.passwd.NewPassword != "new-pass" {
		t.Fatalf("request mismatch: %+v", f.passwd)
	}
}

func TestCmdEmail(t *testing.T) {
	stubPasswords(t, "secret")
	f := &fakeClient{}

	if err := cmdEmail(context.Background(), f, []string{"-email", "b@example.com"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("email: %v", err)
	}
	if f.email.Password != "secret" || f.email.Email != "b@example.com" {
		t.Fatalf("request mismatch: %+v", f.email)
	}
}

func TestCmdProfile(t *testing.T) {
	last := time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC)
	f := &fakeClient{profile: &apiv1.ProfileResponse{
		Account: apiv1.AccountInfo{ID: 5, Username: "ALICE", Email: "a@example.com", LastLogin: &last},
		Characters: []apiv1.Character{
			{GUID: 1, Name: "Jaina", Race: 1, Class: 8, Level: 80, TotalTime: 7260, Online: true},
			{GUID: 2, Name: "Zuljin", Race: 8, Class: 3, Level: 12, TotalTime: 600},
		},
		Stats: apiv1.Stats{CharacterCount: 2, MaxLevel: 80, TotalPlaytime: 7860},
	}}

	var out bytes.Buffer
	if err := cmdProfile(context.Background(), f, nil, &out); err != nil {
		t.Fatalf("profile: %v", err)
	}
	s := out.String()
	for _, want := range []string{"ALICE (#5)", "Jaina", "Mage", "Troll", "Hunter", "2h 1m", "10m", "max level 80"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}

	out.Reset()
	if err := cmdProfile(context.Background(), f, []string{"-json"}, &out); err != nil {
		t.Fatalf("profile -json: %v", err)
	}
	var back apiv1.ProfileResponse
	if err := json.Unmarshal(out.Bytes(), &back); err != nil || len(back.Characters) != 2 {
		t.Fatalf("json output: %v %s", err, out.String())
	}
}

func Test_formatPlaytime(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{0: "0m", 59: "0m", 60: "1m", 3600: "1h 0m", 90061: "25h 1m"}
	for in, want := range cases {
		if got := formatPlaytime(in); got != want {
			t.Fatalf("formatPlaytime(%d)=%q want %q", in, got, want)
		}
	}
}

func Test_names(t *testing.T) {
	t.Parallel()

	if className(6) != "Death Knight" || raceName(10) != "Blood Elf" {
		t.Fatalf("known ids")
	}
	if className(42) != "#42" {
		t.Fatalf("unknown id fallback")
	}
}
