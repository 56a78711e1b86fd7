package service

import (
	"context"
	"time"

	"irysworld/internal/models"
	"irysworld/internal/notifications"
	"irysworld/internal/observability"
	"irysworld/internal/repository"
	"irysworld/internal/validation"
)

type CommentService struct {
	feed   repository.FeedRepository
	users  repository.UserRepository
	events EventPublisher
	now    func() time.Time
}

type AddCommentInput struct {
	PostID   string
	AuthorID string
	Content  string
}

type AddReplyInput struct {
	PostID   string
	ParentID string
	AuthorID string
	Content  string
}

func NewCommentService(feed repository.FeedRepository, users repository.UserRepository, events EventPublisher) *CommentService {
	return &CommentService{
		feed:   feed,
		users:  users,
		events: events,
		now:    time.Now,
	}
}

func (s *CommentService) ListComments(ctx context.Context, postID string) (*models.CommentThread, error) {
	var out *models.CommentThread
	err := s.feed.View(ctx, postID, func(rec repository.Record) error {
		post, err := asPost(rec)
		if err != nil {
			return err
		}
		out = s.threadView(ctx, post, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment appends a top-level comment to a post's thread.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.CommentThread, error) {
	if err := s.validate(ctx, in.AuthorID, in.Content); err != nil {
		return nil, err
	}

	var out *models.CommentThread
	err := s.feed.Update(ctx, in.PostID, func(rec repository.Record) error {
		post, err := asPost(rec)
		if err != nil {
			return err
		}
		c, ok := post.Thread.Append(in.AuthorID, in.Content)
		var created *string
		if ok {
			created = &c.ID
		}
		out = s.threadView(ctx, post, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Created != nil {
		observability.CommentsCreated.WithLabelValues("comment").Inc()
		publish(ctx, s.events, notifications.EventCommentCreated, commentEvent(in.PostID, "", out))
	}
	return out, nil
}

// AddReply inserts a reply under any comment of the post. An unknown parent
// is not an error: the thread comes back unchanged with Created unset.
func (s *CommentService) AddReply(ctx context.Context, in AddReplyInput) (*models.CommentThread, error) {
	if err := s.validate(ctx, in.AuthorID, in.Content); err != nil {
		return nil, err
	}

	var out *models.CommentThread
	err := s.feed.Update(ctx, in.PostID, func(rec repository.Record) error {
		post, err := asPost(rec)
		if err != nil {
			return err
		}
		c, ok := post.Thread.Reply(in.ParentID, in.AuthorID, in.Content)
		var created *string
		if ok {
			created = &c.ID
		}
		out = s.threadView(ctx, post, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Created != nil {
		observability.CommentsCreated.WithLabelValues("reply").Inc()
		publish(ctx, s.events, notifications.EventReplyCreated, commentEvent(in.PostID, in.ParentID, out))
	}
	return out, nil
}

func (s *CommentService) validate(ctx context.Context, authorID, content string) error {
	if err := validation.ValidateText("Content", content, validation.MaxCommentLength); err != nil {
		return models.NewValidationError(err.Error())
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return err
	}
	return nil
}

func (s *CommentService) threadView(ctx context.Context, post *repository.PostRecord, createdID *string) *models.CommentThread {
	tree := post.Thread.Tree(repository.Lookup(ctx, s.users))
	out := &models.CommentThread{
		PostID:   post.ID,
		Count:    post.Thread.CountAll(),
		Comments: tree,
	}
	if createdID != nil {
		out.Created = findComment(tree, *createdID)
	}
	return out
}

func findComment(list []models.Comment, id string) *models.Comment {
	for i := range list {
		if list[i].ID == id {
			c := list[i]
			return &c
		}
		if found := findComment(list[i].Replies, id); found != nil {
			return found
		}
	}
	return nil
}

func commentEvent(postID, parentID string, t *models.CommentThread) map[string]any {
	payload := map[string]any{
		"post_id":        postID,
		"comment":        t.Created,
		"comments_count": t.Count,
	}
	if parentID != "" {
		payload["parent_id"] = parentID
	}
	return payload
}

func asPost(rec repository.Record) (*repository.PostRecord, error) {
	post, ok := rec.(*repository.PostRecord)
	if !ok {
		return nil, models.NewValidationError("Only posts have comment threads")
	}
	return post, nil
}
