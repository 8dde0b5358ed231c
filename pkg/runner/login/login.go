// Package login holds the session runners. Signing in points the app at a
// sync server; local entries are not migrated, the remote document becomes
// the state.
package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tableflip.dev/penpal/pkg/identity"
)

type Login struct {
	Server string
	User   string
	Yes    bool // skip the state-reset warning

	Identity *identity.FileProvider
}

func (n *Login) Do(ctx context.Context) error {
	if n.Identity == nil {
		return errors.New("can not log in, no identity provider")
	}
	server := strings.TrimRight(strings.TrimSpace(n.Server), "/")
	user := strings.TrimSpace(n.User)
	if server == "" || user == "" {
		return errors.New("both --server and --user are required")
	}
	if !n.Yes {
		return errors.New("logging in switches to the server's journal and leaves local entries behind; re-run with --yes to continue")
	}

	body, err := json.Marshal(map[string]string{"user": user})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach %s: %w", server, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("session request failed with status %d", resp.StatusCode)
	}

	var session struct {
		User  string `json:"user"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return err
	}
	if session.Token == "" {
		return errors.New("server returned an empty session token")
	}

	if err := n.Identity.SignIn(identity.Session{User: session.User, Server: server, Token: session.Token}); err != nil {
		return err
	}
	fmt.Printf("logged in as %s on %s\n", session.User, server)
	return nil
}

type Logout struct {
	Identity *identity.FileProvider
}

func (n *Logout) Do(ctx context.Context) error {
	if n.Identity == nil {
		return errors.New("can not log out, no identity provider")
	}
	if _, ok := n.Identity.Current(); !ok {
		fmt.Println("not logged in")
		return nil
	}
	if err := n.Identity.SignOut(); err != nil {
		return err
	}
	fmt.Println("logged out, back to the local journal")
	return nil
}

type Whoami struct {
	Identity *identity.FileProvider
}

func (n *Whoami) Do(ctx context.Context) error {
	if n.Identity == nil {
		return errors.New("no identity provider")
	}
	session, ok := n.Identity.Current()
	if !ok {
		fmt.Println("not logged in, using the local journal")
		return nil
	}
	fmt.Printf("%s on %s\n", session.User, session.Server)
	return nil
}
