package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/session"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/internal/validator"
)

const defaultCacheTTL = 5 * time.Minute

// Dependencies carries everything the services share.
type Dependencies struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	Publisher events.EventPublisher
	Tracker   *session.Tracker
	Validator *validator.Validator
	Tokens    TokenIssuer
	Logger    *slog.Logger
	CacheTTL  time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type serviceManager struct {
	auth     AuthService
	subject  SubjectService
	question QuestionService
	test     TestService
	delivery DeliveryService
	attempt  AttemptService
	result   ResultService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Logger == nil {
		deps.Logger = utils.NewDiscardLogger()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewMockEventPublisher(deps.Logger)
	}
	if deps.Tracker == nil {
		deps.Tracker = session.NewTracker()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = defaultCacheTTL
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	notifier := NewNotificationEventService(deps.Repo, deps.Publisher, deps.Logger)

	return &serviceManager{
		auth:     NewAuthService(deps.Repo, deps.Tokens, deps.Validator, deps.Logger),
		subject:  NewSubjectService(deps.Repo, deps.Cache, deps.CacheTTL, deps.Validator, deps.Logger),
		question: NewQuestionService(deps.Repo, deps.Validator, deps.Logger),
		test:     NewTestService(deps.Repo, deps.Validator, deps.Logger),
		delivery: NewDeliveryService(deps.Repo, deps.Tracker, deps.Logger, deps.Clock),
		attempt:  NewAttemptService(deps.Repo, deps.Tracker, deps.Cache, notifier, deps.Validator, deps.Logger, deps.Clock),
		result:   NewResultService(deps.Repo, deps.Cache, deps.CacheTTL, deps.Logger),
	}
}

func (m *serviceManager) Auth() AuthService         { return m.auth }
func (m *serviceManager) Subject() SubjectService   { return m.subject }
func (m *serviceManager) Question() QuestionService { return m.question }
func (m *serviceManager) Test() TestService         { return m.test }
func (m *serviceManager) Delivery() DeliveryService { return m.delivery }
func (m *serviceManager) Attempt() AttemptService   { return m.attempt }
func (m *serviceManager) Result() ResultService     { return m.result }
