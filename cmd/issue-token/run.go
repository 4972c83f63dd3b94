package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/pkg/auth"
)

func run(args []string, envSecret string, out io.Writer) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		role   = fs.String("role", string(model.RoleUser), "Caller role: user, partner or admin")
		id     = fs.String("id", "", "Caller id, random when empty")
		place  = fs.String("place", "", "Place id for partners, random when empty")
		secret = fs.String("secret", envSecret, "Signing secret")
		ttl    = fs.Duration("ttl", 24*time.Hour, "Token lifetime")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *secret == "" {
		return fmt.Errorf("signing secret must be provided")
	}

	caller, err := buildCaller(*role, *id, *place)
	if err != nil {
		return err
	}

	token, err := auth.NewJWTStrategy(*secret, auth.Options{TTL: *ttl}).IssueToken(caller)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func buildCaller(role, id, place string) (model.Caller, error) {
	r, ok := model.ParseRole(role)
	if !ok {
		return model.Caller{}, fmt.Errorf("unknown role %q", role)
	}
	caller := model.Caller{ID: uuid.New(), Role: r}
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return model.Caller{}, fmt.Errorf("invalid caller id: %w", err)
		}
		caller.ID = parsed
	}
	if r != model.RolePartner {
		if place != "" {
			return model.Caller{}, fmt.Errorf("only partners are bound to a place")
		}
		return caller, nil
	}
	caller.PlaceID = uuid.New()
	if place != "" {
		parsed, err := uuid.Parse(place)
		if err != nil {
			return model.Caller{}, fmt.Errorf("invalid place id: %w", err)
		}
		caller.PlaceID = parsed
	}
	return caller, nil
}
