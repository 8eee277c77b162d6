package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"sukasamasuka/internal/config"
	"sukasamasuka/internal/domain/matching"
	"sukasamasuka/internal/domain/user"
	"sukasamasuka/internal/notifier"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

const (
	notifySigKeyPrefix  = "notify:sigs:user:"
	notifyLockKeyPrefix = "notify:lock:user:"
	notifySigTTL        = 30 * 24 * time.Hour
	notifyLockTTL       = 10 * time.Minute
)

// Notify emails users when their posts gain matches they have not been told
// about yet. Seen matches are tracked as signature sets in Redis, so a
// match that disappears and comes back counts as new again only after the
// set key expires.
// notifyStore is the slice of the Redis cache the notifier needs: seen
// signature sets plus the per-user sweep lock.
type notifyStore interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Notify struct {
	posts    repository.JobPostRepository
	users    user.Repository
	profiles repository.ProfileRepository
	cache    notifyStore
	sender   notifier.EmailSender
	smtp     config.SMTPConfig
	logger   *log.Logger
}

func NewNotifyUsecase(
	posts repository.JobPostRepository,
	users user.Repository,
	profiles repository.ProfileRepository,
	store notifyStore,
	sender notifier.EmailSender,
	smtp config.SMTPConfig,
	logger *log.Logger,
) *Notify {
	return &Notify{
		posts:    posts,
		users:    users,
		profiles: profiles,
		cache:    store,
		sender:   sender,
		smtp:     smtp,
		logger:   logger,
	}
}

// Run scans all posts once and notifies every owner with fresh matches.
// Errors per user are logged and skipped so one bad address cannot stall
// the sweep.
func (n *Notify) Run(ctx context.Context) error {
	all, err := n.posts.ListAll(ctx)
	if err != nil {
		return err
	}

	seen := make(map[uuid.UUID]bool)
	for _, p := range all {
		if seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		if err := n.notifyUser(ctx, p.UserID, all); err != nil && n.logger != nil {
			n.logger.Printf("[Notify] user sweep failed | user=%s | err=%v", p.UserID, err)
		}
	}
	return nil
}

// NotifyUser checks a single user's posts for fresh matches and emails them.
func (n *Notify) NotifyUser(ctx context.Context, userID uuid.UUID) error {
	all, err := n.posts.ListAll(ctx)
	if err != nil {
		return err
	}
	return n.notifyUser(ctx, userID, all)
}

func (n *Notify) notifyUser(ctx context.Context, userID uuid.UUID, all []repository.JobPost) error {
	// The lock keeps concurrent sweeps from double-emailing one user.
	locked, err := n.cache.SetIfNotExists(ctx, notifyLockKeyPrefix+userID.String(), "1", notifyLockTTL)
	if err != nil {
		return err
	}
	if !locked {
		return nil
	}
	defer func() {
		_ = n.cache.Delete(ctx, notifyLockKeyPrefix+userID.String())
	}()

	pool := make([]matching.Posting, 0, len(all))
	for _, p := range all {
		pool = append(pool, toPosting(p))
	}

	// Signatures per owner post: pairwise exact matches plus any cycle the
	// post participates in.
	sigsByPost := make(map[uuid.UUID][]string)
	var current []string
	for _, p := range all {
		if p.UserID != userID {
			continue
		}
		subject := toPosting(p)
		for _, m := range matching.FindForPosting(subject, pool).Exact {
			sig := matching.ExactSignature(subject, m)
			sigsByPost[p.ID] = append(sigsByPost[p.ID], sig)
			current = append(current, sig)
		}
	}
	for _, c := range matching.FindCycles(pool, matching.DefaultMaxCycleLen) {
		if !c.Involves(userID) {
			continue
		}
		sig := c.Signature()
		current = append(current, sig)
		for _, m := range c.Postings {
			if m.OwnerID == userID {
				sigsByPost[m.ID] = append(sigsByPost[m.ID], sig)
			}
		}
	}

	sigKey := notifySigKeyPrefix + userID.String()
	var previous []string
	if _, err := n.cache.GetJSON(ctx, sigKey, &previous); err != nil {
		return err
	}

	fresh := matching.Delta(previous, current)
	if len(fresh) > 0 {
		if err := n.sendFresh(ctx, userID, all, sigsByPost, fresh); err != nil {
			return err
		}
	}

	return n.cache.SetJSON(ctx, sigKey, current, notifySigTTL)
}

func (n *Notify) sendFresh(
	ctx context.Context,
	userID uuid.UUID,
	all []repository.JobPost,
	sigsByPost map[uuid.UUID][]string,
	fresh []string,
) error {
	usr, err := n.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	name := ""
	profile, err := n.profiles.GetByUserID(ctx, userID)
	if err == nil {
		name = profile.FullName
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return err
	}

	freshSet := make(map[string]bool, len(fresh))
	for _, s := range fresh {
		freshSet[s] = true
	}

	for _, p := range all {
		if p.UserID != userID {
			continue
		}
		count := 0
		for _, sig := range sigsByPost[p.ID] {
			if freshSet[sig] {
				count++
			}
		}
		if count == 0 {
			continue
		}
		msg := notifier.MatchEmail(n.smtp, usr.Email, name, p.JobName, p.JobGrade, count)
		if err := n.sender.Send(ctx, msg); err != nil {
			// Delivery failures must not fail the sweep or the caller.
			if n.logger != nil {
				n.logger.Printf("[Notify] email send failed | user=%s | post=%s | err=%v", userID, p.ID, err)
			}
		}
	}
	return nil
}
