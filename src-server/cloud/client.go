package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"planningapp/src-server/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pgxlib "github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// Session identifies a signed-in user on the hosted backend.
type Session struct {
	UserID string
	Email  string
	Token  string
}

type Client struct {
	db        *DB
	jwtSecret string
	jwtExpire time.Duration
}

func NewClient(db *DB, jwtSecret string, jwtExpire time.Duration) *Client {
	return &Client{
		db:        db,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
	}
}

// EnsureSchema creates the users and events tables. The events columns are
// lowercase and flattened: the category snapshot is spread over category*
// columns and the nested value objects live in jsonb columns.
func (c *Client) EnsureSchema(ctx context.Context) error {
	if c == nil {
		return ErrNotConfigured
	}
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id        text PRIMARY KEY,
	email     text NOT NULL UNIQUE,
	pwdhash   bytea NOT NULL,
	createdat timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS events (
	id            text PRIMARY KEY,
	title         text NOT NULL,
	description   text,
	startdate     timestamptz NOT NULL,
	enddate       timestamptz NOT NULL,
	location      text,
	color         text,
	isallday      boolean NOT NULL DEFAULT false,
	reminder      jsonb,
	recurrence    jsonb,
	participants  jsonb,
	createdby     text NOT NULL,
	createdat     timestamptz NOT NULL,
	updatedat     timestamptz NOT NULL,
	isprivate     boolean NOT NULL DEFAULT false,
	tags          jsonb,
	attachments   jsonb,
	categoryid    text,
	categoryname  text,
	categorycolor text,
	categoryicon  text,
	weatherjson   jsonb
)`
	if _, err := c.db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("(*Client).EnsureSchema: %w", err)
	}
	return nil
}

// SignUp registers an account and opens a session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	switch {
	case email == "":
		return nil, fmt.Errorf("(*Client).SignUp: email is blank")
	case password == "":
		return nil, fmt.Errorf("(*Client).SignUp: password is blank")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("(*Client).SignUp: %w", err)
	}

	userID := uuid.NewString()
	const ins = `INSERT INTO users (id, email, pwdhash) VALUES ($1, $2, $3)`
	if _, err := c.db.Pool.Exec(ctx, ins, userID, email, hash); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("(*Client).SignUp: %w", err)
	}

	return c.newSession(userID, email)
}

// SignIn verifies the password and opens a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}

	const sel = `SELECT id, pwdhash FROM users WHERE email=$1`
	var (
		userID string
		hash   []byte
	)
	if err := c.db.Pool.QueryRow(ctx, sel, email).Scan(&userID, &hash); err != nil {
		if errors.Is(err, pgxlib.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("(*Client).SignIn: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return c.newSession(userID, email)
}

func (c *Client) newSession(userID, email string) (*Session, error) {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.jwtExpire)),
	}).SignedString([]byte(c.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("can't sign session token: %w", err)
	}
	return &Session{UserID: userID, Email: email, Token: token}, nil
}

// ParseToken validates a session token and returns the user id.
func (c *Client) ParseToken(token string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(c.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("(*Client).ParseToken: %w", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("(*Client).ParseToken: unexpected claims type")
	}
	return claims.Subject, nil
}

const upsertEvent = `
INSERT INTO events (
	id, title, description, startdate, enddate, location, color, isallday,
	reminder, recurrence, participants, createdby, createdat, updatedat,
	isprivate, tags, attachments,
	categoryid, categoryname, categorycolor, categoryicon, weatherjson
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	$17, $18, $19, $20, $21, $22
)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	startdate = EXCLUDED.startdate,
	enddate = EXCLUDED.enddate,
	location = EXCLUDED.location,
	color = EXCLUDED.color,
	isallday = EXCLUDED.isallday,
	reminder = EXCLUDED.reminder,
	recurrence = EXCLUDED.recurrence,
	participants = EXCLUDED.participants,
	createdby = EXCLUDED.createdby,
	createdat = EXCLUDED.createdat,
	updatedat = EXCLUDED.updatedat,
	isprivate = EXCLUDED.isprivate,
	tags = EXCLUDED.tags,
	attachments = EXCLUDED.attachments,
	categoryid = EXCLUDED.categoryid,
	categoryname = EXCLUDED.categoryname,
	categorycolor = EXCLUDED.categorycolor,
	categoryicon = EXCLUDED.categoryicon,
	weatherjson = EXCLUDED.weatherjson
WHERE events.updatedat <= EXCLUDED.updatedat`

// SyncEvents upserts the events keyed by id, owned by userID. A record on the
// server newer than the pushed one is left alone: last writer wins at record
// granularity, not collection granularity.
func (c *Client) SyncEvents(ctx context.Context, userID string, events []model.Event) error {
	if c == nil {
		return ErrNotConfigured
	}
	if userID == "" {
		return ErrNoSession
	}

	for _, event := range events {
		args, err := upsertArgs(userID, event)
		if err != nil {
			return fmt.Errorf("(*Client).SyncEvents: event %s: %w", event.ID, err)
		}
		if _, err := c.db.Pool.Exec(ctx, upsertEvent, args...); err != nil {
			return fmt.Errorf("(*Client).SyncEvents: event %s: %w", event.ID, err)
		}
	}
	return nil
}

func upsertArgs(userID string, event model.Event) ([]any, error) {
	jsonCols := make([][]byte, 0, 5)
	for _, value := range []any{
		event.Reminder, event.Recurrence, event.Participants,
		event.Attachments, event.Weather,
	} {
		raw, err := marshalNullable(value)
		if err != nil {
			return nil, err
		}
		jsonCols = append(jsonCols, raw)
	}
	tags, err := json.Marshal(event.Tags)
	if err != nil {
		return nil, err
	}

	return []any{
		event.ID, event.Title, nullable(event.Description),
		event.StartDate, event.EndDate, nullable(event.Location),
		event.Color, event.IsAllDay,
		jsonCols[0], jsonCols[1], jsonCols[2],
		userID, event.CreatedAt, event.UpdatedAt, event.IsPrivate,
		tags, jsonCols[3],
		event.Category.ID, event.Category.Name,
		event.Category.Color, event.Category.Icon,
		jsonCols[4],
	}, nil
}

// FetchEvents returns the user's events ordered by start date.
func (c *Client) FetchEvents(ctx context.Context, userID string) ([]model.Event, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	if userID == "" {
		return nil, ErrNoSession
	}

	const q = `
SELECT id, title, description, startdate, enddate, location, color, isallday,
	reminder, recurrence, participants, createdby, createdat, updatedat,
	isprivate, tags, attachments,
	categoryid, categoryname, categorycolor, categoryicon, weatherjson
FROM events
WHERE createdby = $1
ORDER BY startdate ASC`
	rows, err := c.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("(*Client).FetchEvents: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var (
			event                 model.Event
			description, location *string
			jsonCols              [5][]byte
			tags                  []byte
		)
		if err := rows.Scan(
			&event.ID, &event.Title, &description,
			&event.StartDate, &event.EndDate, &location,
			&event.Color, &event.IsAllDay,
			&jsonCols[0], &jsonCols[1], &jsonCols[2],
			&event.CreatedBy, &event.CreatedAt, &event.UpdatedAt,
			&event.IsPrivate, &tags, &jsonCols[3],
			&event.Category.ID, &event.Category.Name,
			&event.Category.Color, &event.Category.Icon,
			&jsonCols[4],
		); err != nil {
			return nil, fmt.Errorf("(*Client).FetchEvents: %w", err)
		}
		if description != nil {
			event.Description = *description
		}
		if location != nil {
			event.Location = *location
		}
		event.Tags = []string{}
		if tags != nil {
			if err := json.Unmarshal(tags, &event.Tags); err != nil {
				return nil, fmt.Errorf("(*Client).FetchEvents: event %s tags: %w", event.ID, err)
			}
		}
		for i, target := range []any{
			&event.Reminder, &event.Recurrence, &event.Participants,
			&event.Attachments, &event.Weather,
		} {
			if jsonCols[i] == nil {
				continue
			}
			if err := json.Unmarshal(jsonCols[i], target); err != nil {
				return nil, fmt.Errorf("(*Client).FetchEvents: event %s: %w", event.ID, err)
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func marshalNullable(v any) ([]byte, error) {
	switch value := v.(type) {
	case *model.ReminderSettings:
		if value == nil {
			return nil, nil
		}
	case *model.RecurrenceSettings:
		if value == nil {
			return nil, nil
		}
	case *model.WeatherInfo:
		if value == nil {
			return nil, nil
		}
	case []model.Participant:
		if len(value) == 0 {
			return nil, nil
		}
	case []string:
		if len(value) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
