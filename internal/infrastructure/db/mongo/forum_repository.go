package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

const (
	postCollection    = "forum_posts"
	commentCollection = "forum_comments"
)

// ForumRepository persists posts and comments. Like sets are stored as
// string arrays on the documents and toggled with $addToSet / $pull, which
// keeps the toggle atomic without a separate likes collection.
type ForumRepository struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewForumRepository(db *mongo.Database) *ForumRepository {
	return &ForumRepository{
		posts:    db.Collection(postCollection),
		comments: db.Collection(commentCollection),
	}
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Author    string             `bson:"author"`
	Content   string             `bson:"content"`
	Likes     []string           `bson:"likes"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PostID    primitive.ObjectID `bson:"post_id"`
	Author    string             `bson:"author"`
	Content   string             `bson:"content"`
	Likes     []string           `bson:"likes"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mp mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:        mp.ID.Hex(),
		Author:    mp.Author,
		Content:   mp.Content,
		Likes:     mp.Likes,
		CreatedAt: mp.CreatedAt,
		UpdatedAt: mp.UpdatedAt,
	}
}

func (mc mongoComment) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        mc.ID.Hex(),
		PostID:    mc.PostID.Hex(),
		Author:    mc.Author,
		Content:   mc.Content,
		Likes:     mc.Likes,
		CreatedAt: mc.CreatedAt,
		UpdatedAt: mc.UpdatedAt,
	}
}

func (r *ForumRepository) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := mongoPost{
		Author:    post.Author,
		Content:   post.Content,
		Likes:     []string{},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	res, err := r.posts.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ForumRepository) FindPostByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}
	var mp mongoPost
	if err := r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ForumRepository) ListPosts(ctx context.Context, page, size int) ([]*domain.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cur, err := r.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, mp.toDomain())
	}
	return posts, cur.Err()
}

func (r *ForumRepository) UpdatePostContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}
	res, err := r.posts.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"content": content, "updated_at": updatedAt}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *ForumRepository) DeletePost(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *ForumRepository) SetPostLike(ctx context.Context, id, username string, liked bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}
	update := bson.M{"$pull": bson.M{"likes": username}}
	if liked {
		update = bson.M{"$addToSet": bson.M{"likes": username}}
	}
	if _, err := r.posts.UpdateByID(ctx, oid, update); err != nil {
		return fmt.Errorf("set post like: %w", err)
	}
	return nil
}

func (r *ForumRepository) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	postOID, err := primitive.ObjectIDFromHex(comment.PostID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}
	doc := mongoComment{
		PostID:    postOID,
		Author:    comment.Author,
		Content:   comment.Content,
		Likes:     []string{},
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	res, err := r.comments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ForumRepository) FindCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}
	var mc mongoComment
	if err := r.comments.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ForumRepository) ListCommentsByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	cur, err := r.comments.Find(ctx, bson.M{"post_id": oid}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var mc mongoComment
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, mc.toDomain())
	}
	return comments, cur.Err()
}

func (r *ForumRepository) UpdateCommentContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}
	res, err := r.comments.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"content": content, "updated_at": updatedAt}})
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *ForumRepository) DeleteComment(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}
	res, err := r.comments.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *ForumRepository) DeleteCommentsByPost(ctx context.Context, postID string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrPostNotFound
	}
	if _, err := r.comments.DeleteMany(ctx, bson.M{"post_id": oid}); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}

func (r *ForumRepository) SetCommentLike(ctx context.Context, id, username string, liked bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}
	update := bson.M{"$pull": bson.M{"likes": username}}
	if liked {
		update = bson.M{"$addToSet": bson.M{"likes": username}}
	}
	if _, err := r.comments.UpdateByID(ctx, oid, update); err != nil {
		return fmt.Errorf("set comment like: %w", err)
	}
	return nil
}
