// README: Caller identity for the booking API, verified from Firebase ID tokens.
package infra

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// RoleClaim is the custom claim copied into Caller.Role.
const RoleClaim = "role"

// Caller is who sent a request: the uid meters the extraction quota and
// scopes follow-up sessions.
type Caller struct {
	UID  string
	Role string
}

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Caller, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewCallerVerifier returns the Firebase-backed verifier for projectID.
// An empty projectID selects anonymous mode: the verifier is nil, no
// Authorization header is required and every caller has an empty uid.
// credentialsFile falls back to application-default credentials when empty.
func NewCallerVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	if projectID == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app for %s: %w", projectID, err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Caller, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	caller := &Caller{UID: token.UID}
	if role, ok := token.Claims[RoleClaim].(string); ok {
		caller.Role = role
	}
	return caller, nil
}
