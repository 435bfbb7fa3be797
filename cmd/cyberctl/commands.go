package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"cyber_champions/internal/client"
	"cyber_champions/internal/domain/model"
)

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	res, err := a.api.Register(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	return a.remember(res)
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	res, err := a.api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	return a.remember(res)
}

func (a *app) remember(res *client.AuthResult) error {
	s := &client.Session{BaseURL: a.baseURL, Token: res.Token, User: res.User}
	if err := s.Save(a.sessionPath); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", res.User.Username, res.User.Role)
	return nil
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	if err := client.ClearSession(a.sessionPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	if a.session == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	u := a.session.User
	fmt.Fprintf(a.out, "%s <%s> id=%d role=%s server=%s\n", u.Username, u.Email, u.ID, u.Role, a.baseURL)
	return nil
}

func cmdStats(ctx context.Context, a *app, _ []string) error {
	s, err := a.api.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "users %d  competitions %d  challenges %d  quizzes %d  certificates %d\n",
		s.Users, s.Competitions, s.Challenges, s.Quizzes, s.Certificates)
	return nil
}

func cmdCompetitions(ctx context.Context, a *app, _ []string) error {
	list, err := a.api.Competitions(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tPRIZE\tTIME LEFT\tPARTICIPANTS")
	for _, c := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n", c.ID, c.Title, c.Type, c.Prize, c.TimeLeft, c.Participants)
	}
	return w.Flush()
}

func cmdLeaderboard(ctx context.Context, a *app, _ []string) error {
	entries, err := a.api.Leaderboard(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "RANK\tNAME\tUSERNAME\tSCORE\tCOMPETITIONS\tCOUNTRY")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", e.Rank, e.Name, e.Username, e.Score, e.Competitions, e.Country)
	}
	return w.Flush()
}

func cmdChallenges(ctx context.Context, a *app, _ []string) error {
	list, err := a.api.Challenges(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tPOINTS")
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Title, c.Category, c.Difficulty, c.Points)
	}
	return w.Flush()
}

func cmdFlag(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: flag <challenge-id> <flag>")
	}
	ok, err := a.api.SubmitFlag(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "Correct flag!")
	} else {
		fmt.Fprintln(a.out, "Wrong flag, try again.")
	}
	return nil
}

func cmdQuizzes(ctx context.Context, a *app, _ []string) error {
	list, err := a.api.Quizzes(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPASS MARK")
	for _, q := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\n", q.ID, q.Title, q.Category, q.MinScore)
	}
	return w.Flush()
}

func cmdQuiz(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: quiz <quiz-id>")
	}
	quizzes, err := a.api.Quizzes(ctx)
	if err != nil {
		return err
	}
	var quiz *model.Quiz
	for i := range quizzes {
		if quizzes[i].ID == args[0] {
			quiz = &quizzes[i]
		}
	}
	if quiz == nil {
		return fmt.Errorf("quiz %q not found", args[0])
	}
	questions, err := a.api.Questions(ctx, quiz.ID)
	if err != nil {
		return err
	}

	run := client.NewQuizRun()
	if err := run.Start(*quiz, questions); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (pass mark %d%%)\n", quiz.Title, quiz.MinScore)

	in := bufio.NewScanner(a.in)
	for run.State() == client.StateInProgress {
		q, err := run.Current()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "\n[%d/%d] %s\n", run.Index()+1, run.Total(), q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprint(a.out, "> ")
		if !in.Scan() {
			return errors.New("quiz aborted")
		}
		choice, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil || run.Answer(choice-1) != nil {
			fmt.Fprintf(a.out, "Enter a number between 1 and %d.\n", len(q.Options))
			continue
		}
		if run.IsLast() {
			if _, err := run.Submit(ctx, a.api, a.session.User.ID); err != nil {
				return err
			}
			break
		}
		if _, err := run.Next(); err != nil {
			return err
		}
	}

	res := run.Result()
	fmt.Fprintf(a.out, "\nScore: %d%%\n", res.Score)
	if !res.Passed {
		fmt.Fprintf(a.out, "Not passed. You need %d%%.\n", quiz.MinScore)
		return nil
	}
	fmt.Fprintln(a.out, "Passed!")
	if res.Certificate != nil {
		fmt.Fprintf(a.out, "Certificate issued: %s\n", res.Certificate.CertificateCode)
	}
	return nil
}

func cmdCertificates(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("certificates", flag.ExitOnError)
	saveDir := fs.String("save", "", "write each certificate to this directory")
	fs.Parse(args)

	certs, err := a.api.Certificates(ctx, a.session.User.ID)
	if err != nil {
		return err
	}
	if len(certs) == 0 {
		fmt.Fprintln(a.out, "No certificates yet.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "CODE\tQUIZ\tISSUED")
	for _, c := range certs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.CertificateCode, c.QuizTitle, c.IssueDate.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if *saveDir == "" {
		return nil
	}
	if err := os.MkdirAll(*saveDir, 0o755); err != nil {
		return err
	}
	for _, c := range certs {
		path := filepath.Join(*saveDir, c.FileName("txt"))
		if err := os.WriteFile(path, []byte(renderCertificate(a.session.User, c)), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "saved", path)
	}
	return nil
}

func renderCertificate(u model.User, c model.Certificate) string {
	var b strings.Builder
	fmt.Fprintln(&b, "CYBER CHAMPIONS")
	fmt.Fprintln(&b, "Certificate of Completion")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Awarded to: %s\n", u.Username)
	fmt.Fprintf(&b, "Course:     %s\n", c.QuizTitle)
	fmt.Fprintf(&b, "Issued:     %s\n", c.IssueDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Code:       %s\n", c.CertificateCode)
	return b.String()
}

func cmdAsk(ctx context.Context, a *app, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return errors.New("usage: ask <message>")
	}
	reply, err := a.api.Ask(ctx, message)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, reply)
	return nil
}

func cmdAdminUsers(ctx context.Context, a *app, _ []string) error {
	users, err := a.api.AdminUsers(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func cmdAdminAddCompetition(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("admin-add-competition", flag.ExitOnError)
	var c client.NewCompetition
	fs.StringVar(&c.Title, "title", "", "title")
	fs.StringVar(&c.Type, "type", string(model.CompetitionCTF), "CTF, BUG BOUNTY, CODING or WEB PENTEST")
	fs.StringVar(&c.Prize, "prize", "", "prize, e.g. $1,000")
	fs.StringVar(&c.Description, "description", "", "description")
	fs.StringVar(&c.TimeLeft, "time-left", "", "time left, e.g. 12:00:00")
	fs.IntVar(&c.Participants, "participants", 0, "participant count")
	fs.StringVar(&c.Color, "color", "#00f3ff", "accent color")
	fs.Parse(args)

	id, err := a.api.AddCompetition(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Competition %d added.\n", id)
	return nil
}

func cmdAdminDeleteCompetition(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: admin-delete-competition <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := a.api.DeleteCompetition(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Competition %d deleted.\n", id)
	return nil
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}
