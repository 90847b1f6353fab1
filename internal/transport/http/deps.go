package http

import (
	"github.com/daeseda/laundry-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/daeseda/laundry-api/internal/infrastructure/jwt"
	redisstore "github.com/daeseda/laundry-api/internal/infrastructure/redis"
	s3infra "github.com/daeseda/laundry-api/internal/infrastructure/s3"
	"github.com/daeseda/laundry-api/internal/infrastructure/smtp"
	"github.com/daeseda/laundry-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. SMSSender may be
// nil when SNS is not configured; JWTProvider may be nil only in development,
// in which case authenticated routes reject everything.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	SessionRepo *dynamo.SessionRepo
	OrderRepo   *dynamo.OrderRepo
	ReviewRepo  *dynamo.ReviewRepo
	NoticeRepo  *dynamo.NoticeRepo
	CatalogRepo *dynamo.CatalogRepo
	CodeStore   *redisstore.CodeStore
	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}
