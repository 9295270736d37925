package middleware

import (
	"context"
	"slices"
	"strings"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	ActorKey      AuthContextKey = "actor"
	ActorKeyFiber string         = "Actor"
)

// Actor is the authenticated caller. ID is a customer id or an employee id
// depending on Role.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth validates an HS256 bearer token signed with JWT_SECRET.
func (m *Middleware) RequireAuth() fiber.Handler {
	secret := []byte(m.Config.JWTSecret)

	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" || tokenParts[1] == "" {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		actor, err := ParseToken(secret, tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(ActorKeyFiber, actor)
		ctx := context.WithValue(c.UserContext(), ActorKey, actor)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireRole rejects actors whose role is not listed.
func (m *Middleware) RequireRole(roles ...Role) fiber.Handler {
	log := m.log.Function("RequireRole")

	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !slices.Contains(roles, actor.Role) {
			log.Info("role not permitted", "actorID", actor.ID, "role", actor.Role, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		return c.Next()
	}
}

// GetActor extracts the authenticated caller from Fiber context
func GetActor(c *fiber.Ctx) *Actor {
	actor, ok := c.Locals(ActorKeyFiber).(*Actor)
	if !ok {
		return nil
	}
	return actor
}

func ParseToken(secret []byte, raw string) (*Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, err
	}

	switch claims.Role {
	case RoleCustomer, RoleEmployee, RoleAdmin:
	default:
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &Actor{ID: id, Role: claims.Role}, nil
}

// IssueToken signs a token for actor that expires after ttl.
func IssueToken(secret []byte, actor Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
