package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	apiv1 "github.com/and161185/realm-accounts/internal/api/v1"
)

type command struct {
	auth bool // needs a saved access token
	fn   func(ctx context.Context, cli apiv1.AccountsClient, args []string, w io.Writer) error
}

var commands = map[string]command{
	"register": {fn: cmdRegister},
	"login":    {fn: cmdLogin},
	"passwd":   {auth: true, fn: cmdPasswd},
	"email":    {auth: true, fn: cmdEmail},
	"profile":  {auth: true, fn: cmdProfile},
}

func cmdRegister(ctx context.Context, cli apiv1.AccountsClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	u := fs.String("u", "", "username")
	p := fs.String("p", "", "password")
	email := fs.String("email", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *u == "" || *email == "" {
		return errors.New("need -u and -email")
	}
	pw, err := passwordOrPrompt(w, *p, "Password: ")
	if err != nil {
		return err
	}
	if *p == "" {
		again, err := promptPassword(w, "Repeat password: ")
		if err != nil {
			return err
		}
		if again != pw {
			return errors.New("passwords do not match")
		}
	}

	resp, err := cli.Register(ctx, &apiv1.RegisterRequest{Username: *u, Password: pw, Email: *email})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "account %d created\n", resp.AccountID)
	return nil
}

func cmdLogin(ctx context.Context, cli apiv1.AccountsClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	u := fs.String("u", "", "username")
	p := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *u == "" {
		return errors.New("need -u")
	}
	pw, err := passwordOrPrompt(w, *p, "Password: ")
	if err != nil {
		return err
	}

	resp, err := cli.Login(ctx, &apiv1.LoginRequest{Username: *u, Password: pw})
	if err != nil {
		return err
	}
	if err := saveToken(resp.AccessToken, resp.ExpiresAt); err != nil {
		return err
	}
	fmt.Fprintf(w, "logged in as %s\n", resp.Account.Username)
	return nil
}

func cmdPasswd(ctx context.Context, cli apiv1.AccountsClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	current, err := promptPassword(w, "Current password: ")
	if err != nil {
		return err
	}
	next, err := promptPassword(w, "New password: ")
	if err != nil {
		return err
	}
	again, err := promptPassword(w, "Repeat new password: ")
	if err != nil {
		return err
	}
	if again != next {
		return errors.New("passwords do not match")
	}

	if _, err := cli.ChangePassword(ctx, &apiv1.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}); err != nil {
		return err
	}
	fmt.Fprintln(w, "password changed")
	return nil
}

func cmdEmail(ctx context.Context, cli apiv1.AccountsClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("email", flag.ContinueOnError)
	p := fs.String("p", "", "password")
	email := fs.String("email", "", "new email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("need -email")
	}
	pw, err := passwordOrPrompt(w, *p, "Password: ")
	if err != nil {
		return err
	}

	if _, err := cli.ChangeEmail(ctx, &apiv1.ChangeEmailRequest{Password: pw, Email: *email}); err != nil {
		return err
	}
	fmt.Fprintln(w, "email changed")
	return nil
}

func cmdProfile(ctx context.Context, cli apiv1.AccountsClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := cli.Profile(ctx, &apiv1.ProfileRequest{})
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	return printProfile(w, p)
}

func printProfile(w io.Writer, p *apiv1.ProfileResponse) error {
	a := p.Account
	fmt.Fprintf(w, "Account:   %s (#%d)\n", a.Username, a.ID)
	fmt.Fprintf(w, "Email:     %s\n", a.Email)
	fmt.Fprintf(w, "Joined:    %s\n", a.JoinDate.Format("2006-01-02"))
	if a.LastLogin != nil {
		fmt.Fprintf(w, "Last seen: %s\n", a.LastLogin.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Characters: %d, max level %d, played %s\n\n",
		p.Stats.CharacterCount, p.Stats.MaxLevel, formatPlaytime(p.Stats.TotalPlaytime))

	if len(p.Characters) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLEVEL\tRACE\tCLASS\tPLAYED\tONLINE")
	for _, c := range p.Characters {
		online := ""
		if c.Online {
			online = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			c.Name, c.Level, raceName(c.Race), className(c.Class), formatPlaytime(c.TotalTime), online)
	}
	return tw.Flush()
}

// formatPlaytime renders seconds as "Xh Ym", or "Ym" under an hour.
func formatPlaytime(seconds int64) string {
	h, m := seconds/3600, (seconds%3600)/60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

var classNames = map[int]string{
	1: "Warrior", 2: "Paladin", 3: "Hunter", 4: "Rogue", 5: "Priest",
	6: "Death Knight", 7: "Shaman", 8: "Mage", 9: "Warlock", 11: "Druid",
}

var raceNames = map[int]string{
	1: "Human", 2: "Orc", 3: "Dwarf", 4: "Night Elf", 5: "Undead",
	6: "Tauren", 7: "Gnome", 8: "Troll", 10: "Blood Elf", 11: "Draenei",
}

func className(id int) string { return lookupName(classNames, id) }
func raceName(id int) string  { return lookupName(raceNames, id) }

func lookupName(m map[int]string, id int) string {
	if n, ok := m[id]; ok {
		return n
	}
	return fmt.Sprintf("#%d", id)
}
