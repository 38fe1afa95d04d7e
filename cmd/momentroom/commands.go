package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/weiawesome/momentroom/internal/browse"
	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/internal/resource"
	"github.com/weiawesome/momentroom/internal/signup"
	pkglog "github.com/weiawesome/momentroom/pkg/log"
)

func (a *app) search(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	q := fs.String("q", "", "search text")
	condition := fs.String("condition", string(domain.ConditionRoom), "match room names (room) or host nicknames (host)")
	order := fs.String("order", string(domain.OrderDateDesc), "date_desc or date_asc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := domain.DefaultSearchParams()
	for _, in := range []struct{ field, value string }{
		{domain.FieldQuery, *q},
		{domain.FieldCondition, *condition},
		{domain.FieldOrder, *order},
	} {
		next, err := query.Compose(params, in.field, in.value)
		if err != nil {
			return err
		}
		params = next
	}

	st := a.rooms.SearchRooms(ctx, params)
	renderRooms(os.Stdout, st)
	if st.IsError() {
		return errors.New("search failed")
	}
	return nil
}

func (a *app) browse(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("browse", pflag.ContinueOnError)
	metricsAddr := fs.String("metrics-addr", "", "serve prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l := pkglog.L()
				l.Error().Err(err).Msg("metrics server failed")
			}
		}()
		defer srv.Close()
	}

	b := browse.New(a.rooms)
	b.OnChange(func(key query.Key, st resource.State[browse.Rooms]) {
		fmt.Printf("-- %s\n", key)
		renderRooms(os.Stdout, st)
	})
	b.Start(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			field, value := domain.FieldQuery, line
			if f, v, found := strings.Cut(line, "="); found {
				field, value = strings.TrimSpace(f), v
			}
			if _, err := b.Input(ctx, field, value); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}

func (a *app) room(ctx context.Context, args []string) error {
	id, err := parseID("room", args)
	if err != nil {
		return err
	}

	header, st := a.rooms.RoomHeader(ctx, id)
	if st.IsError() {
		fmt.Printf("Fetch data error: %s\n", st.Message)
		return errors.New("room fetch failed")
	}

	fmt.Println(header.DisplayName)
	if header.DisplayDescription != "" {
		fmt.Println(header.DisplayDescription)
	}
	if header.Since != "" {
		fmt.Printf("Since %s\n", header.Since)
	}
	if header.ShowPendingJoinRequests() {
		fmt.Printf("Join requests: %d\n", header.PendingJoinRequestCount)
	}
	if header.CanCreateMoment {
		fmt.Println("[ + New moment ]")
	}
	return nil
}

func (a *app) join(ctx context.Context, args []string) error {
	id, err := parseID("join", args)
	if err != nil {
		return err
	}

	result, err := a.rooms.RequestJoin(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Join request for room %d: %s\n", result.RoomID, result.Status)
	return nil
}

func (a *app) createMoment(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("moment create", pflag.ContinueOnError)
	roomID := fs.Int64("room", 0, "room id")
	content := fs.String("content", "", "moment text")
	images := fs.StringArray("image", nil, "attachment: local path or s3://bucket/key (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *roomID <= 0 {
		return errors.New("moment create: --room is required")
	}

	id, err := a.moments.Create(ctx, &domain.CreateMomentRequest{
		RoomID:      *roomID,
		Content:     *content,
		Attachments: *images,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created moment %d\n", id)
	return nil
}

func (a *app) getMoment(ctx context.Context, args []string) error {
	id, err := parseID("moment get", args)
	if err != nil {
		return err
	}

	m, err := a.moments.FetchInfo(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d in room %d by %s (%s)\n%s\n", m.MomentID, m.RoomID, m.Nickname, m.CreatedAt, m.Content)
	for _, u := range m.ImageURLs {
		fmt.Printf("  %s\n", u)
	}
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("signup", pflag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password again")
	nickname := fs.String("nickname", "", "nickname")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := signup.NewForm()
	form.Set(domain.FieldEmail, *email)
	form.Set(domain.FieldPassword, *password)
	form.Set(domain.FieldConfirmationPassword, *confirm)
	form.Set(domain.FieldNickname, *nickname)

	if hint := form.PasswordHint(); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	if err := form.Submit(ctx, a.accounts.Register); err != nil {
		return err
	}
	fmt.Println("Signed up. You can log in now.")
	return nil
}

func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected exactly one id", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: invalid id %q", cmd, args[0])
	}
	return id, nil
}
