package service

import (
	"context"
	"time"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	user.ID = id
	r.users[id] = *user
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := u
	return &user, nil
}

func (r *fakeUserRepo) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	repo := &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
	for _, ex := range exercises {
		repo.exercises[ex.ID] = ex
	}
	return repo
}

func (r *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	for _, ex := range r.exercises {
		if ex.Name == exercise.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	exercise.ID = id
	r.exercises[id] = *exercise
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	exercise := ex
	return &exercise, nil
}

func (r *fakeExerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	for _, ex := range r.exercises {
		if ex.Name == name {
			exercise := ex
			return &exercise, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, ex := range r.exercises {
		if filter.MuscleGroup != "" && string(ex.MuscleGroup) != filter.MuscleGroup {
			continue
		}
		if filter.Difficulty != "" && string(ex.Difficulty) != filter.Difficulty {
			continue
		}
		if filter.Equipment != "" && string(ex.Equipment) != filter.Equipment {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]domain.WorkoutPlan
}

func newFakePlanRepo(plans ...domain.WorkoutPlan) *fakePlanRepo {
	repo := &fakePlanRepo{plans: make(map[primitive.ObjectID]domain.WorkoutPlan)}
	for _, p := range plans {
		repo.plans[p.ID] = p
	}
	return repo
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	plan.ID = id
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	r.plans[id] = *plan
	return id, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	plan := p
	return &plan, nil
}

func (r *fakePlanRepo) List(ctx context.Context, filter repository.PlanFilter) ([]domain.WorkoutPlan, error) {
	out := []domain.WorkoutPlan{}
	for _, p := range r.plans {
		visible := p.IsPublic || (filter.Viewer != nil && *filter.Viewer == p.CreatedBy)
		if !visible {
			continue
		}
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		if filter.Difficulty != "" && string(p.Difficulty) != filter.Difficulty {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlanRepo) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	plan.UpdatedAt = time.Now()
	r.plans[plan.ID] = *plan
	return nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeLogRepo struct {
	logs map[primitive.ObjectID]domain.WorkoutLog

	// Recorded by DailyCountsSince so tests can assert the window bound.
	lastSince time.Time

	muscleGroup string
}

func newFakeLogRepo(logs ...domain.WorkoutLog) *fakeLogRepo {
	repo := &fakeLogRepo{logs: make(map[primitive.ObjectID]domain.WorkoutLog)}
	for _, l := range logs {
		repo.logs[l.ID] = l
	}
	return repo
}

func (r *fakeLogRepo) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	log.ID = id
	if log.Date.IsZero() {
		log.Date = time.Now()
	}
	log.CreatedAt = time.Now()
	r.logs[id] = *log
	return id, nil
}

func (r *fakeLogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	log := l
	return &log, nil
}

func (r *fakeLogRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	out := []domain.WorkoutLog{}
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *fakeLogRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, l := range r.logs {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLogRepo) TotalDurationByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var total int64
	for _, l := range r.logs {
		if l.UserID == userID {
			total += int64(l.Duration)
		}
	}
	return total, nil
}

func (r *fakeLogRepo) DailyCountsSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.DailyWorkoutCount, error) {
	r.lastSince = since
	counts := make(map[string]int)
	for _, l := range r.logs {
		if l.UserID != userID || l.Date.Before(since) {
			continue
		}
		counts[l.Date.UTC().Format("2006-01-02")]++
	}
	out := []domain.DailyWorkoutCount{}
	for day, n := range counts {
		out = append(out, domain.DailyWorkoutCount{Date: day, Count: n})
	}
	return out, nil
}

func (r *fakeLogRepo) MostUsedMuscleGroup(ctx context.Context, userID primitive.ObjectID) (string, error) {
	return r.muscleGroup, nil
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]domain.Post
}

func newFakePostRepo(posts ...domain.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[primitive.ObjectID]domain.Post)}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (r *fakePostRepo) Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	post.ID = id
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.Comments = []domain.Comment{}
	post.Likes = []primitive.ObjectID{}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts[id] = *post
	return id, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post := p
	return &post, nil
}

func (r *fakePostRepo) GetAll(ctx context.Context) ([]domain.Post, error) {
	out := []domain.Post{}
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment *domain.Comment) error {
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	p.Comments = append(p.Comments, *comment)
	r.posts[postID] = p
	return nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			r.posts[postID] = p
			return nil
		}
	}
	p.Likes = append(p.Likes, userID)
	r.posts[postID] = p
	return nil
}
