package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/haulmatch/admin-console/internal/http/templates/core"
	"github.com/haulmatch/admin-console/internal/service"
)

func prompt(cmdCtx *commandContext, label string) (string, error) {
	if err := writef(cmdCtx.Out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := cmdCtx.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	username := fs.String("username", "", "Admin username (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := openSession(cmdCtx)
	if err != nil {
		return err
	}

	if strings.TrimSpace(*username) == "" {
		if *username, err = prompt(cmdCtx, "Username"); err != nil {
			return err
		}
	}
	password, err := prompt(cmdCtx, "Password")
	if err != nil {
		return err
	}

	challenge, err := sess.Login.Begin(cmdCtx.Ctx, sess.Manager, *username, password)
	if err != nil {
		return err
	}
	if challenge.PhoneSuffix != "" {
		err = writef(cmdCtx.Out, "A %d-digit code was sent to the phone ending %s.\n", service.OTPLength, challenge.PhoneSuffix)
	} else {
		err = writef(cmdCtx.Out, "A %d-digit code was sent to your phone.\n", service.OTPLength)
	}
	if err != nil {
		return err
	}

	otp, err := prompt(cmdCtx, "OTP")
	if err != nil {
		return err
	}
	admin, err := sess.Login.Verify(cmdCtx.Ctx, sess.Manager, otp)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Signed in as %s (%s).\n", admin.Username, admin.Role)
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	sess, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	sess.Manager.Logout(cmdCtx.Ctx)
	return writeln(cmdCtx.Out, "Signed out.")
}

type whoamiView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Level     int        `json:"level"`
	Phone     string     `json:"phone"`
	ExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	Features  []string   `json:"features"`
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := registerOutputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	caller, err := sess.requireCaller(cmdCtx)
	if err != nil {
		return err
	}
	admin := sess.Manager.Snapshot().Admin

	view := whoamiView{
		ID:       admin.ID,
		Username: admin.Username,
		Role:     caller.Role.String(),
		Level:    int(caller.Role),
		Phone:    core.MaskPhone(admin.Phone),
		Features: []string{},
	}
	for _, f := range sess.Access.Features() {
		if f.Allows(caller.Role) {
			view.Features = append(view.Features, f.Key)
		}
	}
	if info, err := service.DescribeToken(caller.Token); err == nil && !info.ExpiresAt.IsZero() {
		view.ExpiresAt = &info.ExpiresAt
	}

	if out.structured() {
		return out.emit(cmdCtx.Out, view)
	}

	lines := []string{
		"Username:  " + view.Username,
		fmt.Sprintf("Role:      %s (level %d)", view.Role, view.Level),
		"Phone:     " + view.Phone,
		"Features:  " + strings.Join(view.Features, ", "),
	}
	if view.ExpiresAt != nil {
		lines = append(lines, "Token expires: "+view.ExpiresAt.Local().Format(time.RFC1123))
	}
	for _, l := range lines {
		if err := writeln(cmdCtx.Out, l); err != nil {
			return err
		}
	}
	return nil
}
