package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/session"
	"github.com/trezcool/schooladmin/core/user"
)

const (
	contextTokenKey = "userToken"
	contextUserKey  = "user"
)

// tokenIssuer signs and checks the access tokens: HS256 with the username as subject.
type tokenIssuer struct {
	conf  middleware.JWTConfig
	delta time.Duration
}

func newTokenIssuer(conf *core.Config) *tokenIssuer {
	return &tokenIssuer{
		conf: middleware.JWTConfig{
			SigningKey:    []byte(conf.Server.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(session.Claims),
		},
		delta: conf.Server.JWTExpirationDelta,
	}
}

func (ti *tokenIssuer) middleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(ti.conf)
}

// Generate returns a signed token for usr.
func (ti *tokenIssuer) Generate(usr user.User) (string, error) {
	now := time.Now()
	claims := &session.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   usr.Username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ti.delta).Unix(),
		},
		IsAdmin: usr.IsAdmin,
	}
	method := jwt.GetSigningMethod(ti.conf.SigningMethod)
	ss, err := jwt.NewWithClaims(method, claims).SignedString(ti.conf.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (session.Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*session.Claims); ok {
			return *claims, nil
		}
	}
	return session.Claims{}, errInvalidToken
}

// loadUserMiddleware puts the user the token was issued to in the context.
func loadUserMiddleware(store Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			usr, err := store.UserByUsername(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			ctx.Set(contextUserKey, usr)
			return next(ctx)
		}
	}
}

func getContextUser(ctx echo.Context) user.User {
	usr, _ := ctx.Get(contextUserKey).(user.User)
	return usr
}

func authenticate(store Store, username, pwd string) (user.User, error) {
	usr, err := store.UserByUsername(core.CleanString(username))
	if err != nil {
		return user.User{}, errAuthenticationFailed
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return user.User{}, errAuthenticationFailed
	}
	return usr, nil
}

func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid id")
	}
	return id, nil
}

func newRequestID() string {
	return uuid.New().String()
}
