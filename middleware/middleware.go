package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rajputritesh1907/taskbackend/logging"
	"github.com/rajputritesh1907/taskbackend/models"
	"github.com/rajputritesh1907/taskbackend/utils"
)

type contextKey string

const actorKey contextKey = "actor"

// JWTAuth validates the Bearer token, loads the acting user from the
// users collection by the token's email claim and stores it in the
// request context.
func JWTAuth(users *mongo.Collection) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := utils.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token for request to %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			var actor models.User
			if err := users.FindOne(r.Context(), bson.M{"email": claims.Email}).Decode(&actor); err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_UNKNOWN_USER, Description: Token user %s not found", claims.Email)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			actor.Password = ""

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom returns the authenticated user placed by JWTAuth.
func ActorFrom(r *http.Request) (models.User, bool) {
	actor, ok := r.Context().Value(actorKey).(models.User)
	return actor, ok
}

// EnableCORS allows the frontend origin to call the API.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
