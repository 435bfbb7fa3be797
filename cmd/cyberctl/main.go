// Command cyberctl is a terminal client for the Cyber Champions API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"

	"cyber_champions/internal/client"
)

type app struct {
	baseURL     string
	sessionPath string
	session     *client.Session
	api         *client.Client
	in          io.Reader
	out         io.Writer
}

type command struct {
	summary string
	// gated commands need a cached session, like the views behind login.
	gated bool
	admin bool
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"register":                 {summary: "create an account and sign in", run: cmdRegister},
	"login":                    {summary: "sign in and cache the session", run: cmdLogin},
	"logout":                   {summary: "forget the cached session", run: cmdLogout},
	"whoami":                   {summary: "show the cached user", run: cmdWhoami},
	"stats":                    {summary: "platform totals", run: cmdStats},
	"competitions":             {summary: "list competitions", gated: true, run: cmdCompetitions},
	"leaderboard":              {summary: "show the leaderboard", gated: true, run: cmdLeaderboard},
	"challenges":               {summary: "list CTF challenges", gated: true, run: cmdChallenges},
	"flag":                     {summary: "submit a flag: flag <challenge-id> <flag>", gated: true, run: cmdFlag},
	"quizzes":                  {summary: "list quizzes", gated: true, run: cmdQuizzes},
	"quiz":                     {summary: "take a quiz interactively: quiz <quiz-id>", gated: true, run: cmdQuiz},
	"certificates":             {summary: "list your certificates, -save DIR exports them", gated: true, run: cmdCertificates},
	"ask":                      {summary: "ask the AI assistant: ask <message>", gated: true, run: cmdAsk},
	"admin-users":              {summary: "list registered users", gated: true, admin: true, run: cmdAdminUsers},
	"admin-add-competition":    {summary: "add a competition", gated: true, admin: true, run: cmdAdminAddCompetition},
	"admin-delete-competition": {summary: "delete a competition: admin-delete-competition <id>", gated: true, admin: true, run: cmdAdminDeleteCompetition},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cyberctl: ")

	defaultPath, err := client.DefaultSessionPath()
	if err != nil {
		defaultPath = ".cyberctl-session.json"
	}

	fs := flag.NewFlagSet("cyberctl", flag.ExitOnError)
	server := fs.String("server", envOr("CYBER_API", "http://localhost:3000"), "API base URL")
	sessionPath := fs.String("session", defaultPath, "session file")
	fs.Usage = func() { usage(fs) }
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		usage(fs)
		os.Exit(2)
	}
	name, args := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		log.Printf("unknown command %q", name)
		usage(fs)
		os.Exit(2)
	}

	a := &app{baseURL: *server, sessionPath: *sessionPath, in: os.Stdin, out: os.Stdout}
	a.session, err = client.LoadSession(a.sessionPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if cmd.gated && a.session == nil {
		log.Fatalf("%s requires a session, run `cyberctl login` first", name)
	}
	if cmd.admin && !a.session.IsAdmin() {
		log.Fatalf("%s requires an admin account", name)
	}
	var opts []client.Option
	if a.session != nil {
		if a.session.BaseURL != "" && !flagSet(fs, "server") {
			a.baseURL = a.session.BaseURL
		}
		opts = append(opts, client.WithToken(a.session.Token))
	}
	a.api = client.New(a.baseURL, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, a, args); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			log.Fatalf("%s", apiErr.Message)
		}
		log.Fatalf("ERROR: %v", err)
	}
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: cyberctl [flags] <command> [args]")
	fmt.Fprintln(out, "\nflags:")
	fs.PrintDefaults()
	fmt.Fprintln(out, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-26s %s\n", name, commands[name].summary)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
