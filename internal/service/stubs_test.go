package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/internal/search"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn         func(context.Context, *entity.User) error
	findByIDFn       func(context.Context, uuid.UUID) (*entity.User, error)
	findByUsernameFn func(context.Context, string) (*entity.User, error)
	findByEmailFn    func(context.Context, string) (*entity.User, error)
	findAllFn        func(context.Context) ([]*entity.User, error)
	updateFn         func(context.Context, *entity.User) error
	deleteFn         func(context.Context, uuid.UUID) (int64, error)
	existsFn         func(context.Context, uuid.UUID) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entity.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.findByIDFn(ctx, id)
}
func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.findByUsernameFn(ctx, username)
}
func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.findByEmailFn(ctx, email)
}
func (s *userRepoStub) FindAll(ctx context.Context) ([]*entity.User, error) {
	return s.findAllFn(ctx)
}
func (s *userRepoStub) Update(ctx context.Context, user *entity.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:         func(_ context.Context, _ *entity.User) error { return nil },
		findByIDFn:       func(_ context.Context, _ uuid.UUID) (*entity.User, error) { return &entity.User{}, nil },
		findByUsernameFn: func(_ context.Context, _ string) (*entity.User, error) { return nil, gorm.ErrRecordNotFound },
		findByEmailFn:    func(_ context.Context, _ string) (*entity.User, error) { return nil, gorm.ErrRecordNotFound },
		findAllFn:        func(_ context.Context) ([]*entity.User, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *entity.User) error { return nil },
		deleteFn:         func(_ context.Context, _ uuid.UUID) (int64, error) { return 1, nil },
		existsFn:         func(_ context.Context, _ uuid.UUID) (bool, error) { return true, nil },
	}
}

// tuitRepoStub is a stub for repository.TuitRepository.
type tuitRepoStub struct {
	createFn     func(context.Context, *entity.Tuit) error
	findByIDFn   func(context.Context, uuid.UUID) (*entity.Tuit, error)
	findAllFn    func(context.Context) ([]*entity.Tuit, error)
	findByUserFn func(context.Context, uuid.UUID) ([]*entity.Tuit, error)
	updateFn     func(context.Context, *entity.Tuit) error
	deleteFn     func(context.Context, uuid.UUID) (int64, error)
	existsFn     func(context.Context, uuid.UUID) (bool, error)
}

func (s *tuitRepoStub) Create(ctx context.Context, tuit *entity.Tuit) error {
	return s.createFn(ctx, tuit)
}
func (s *tuitRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tuit, error) {
	return s.findByIDFn(ctx, id)
}
func (s *tuitRepoStub) FindAll(ctx context.Context) ([]*entity.Tuit, error) {
	return s.findAllFn(ctx)
}
func (s *tuitRepoStub) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	return s.findByUserFn(ctx, userID)
}
func (s *tuitRepoStub) Update(ctx context.Context, tuit *entity.Tuit) error {
	return s.updateFn(ctx, tuit)
}
func (s *tuitRepoStub) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteFn(ctx, id)
}
func (s *tuitRepoStub) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopTuitRepo() *tuitRepoStub {
	return &tuitRepoStub{
		createFn:     func(_ context.Context, _ *entity.Tuit) error { return nil },
		findByIDFn:   func(_ context.Context, _ uuid.UUID) (*entity.Tuit, error) { return &entity.Tuit{}, nil },
		findAllFn:    func(_ context.Context) ([]*entity.Tuit, error) { return nil, nil },
		findByUserFn: func(_ context.Context, _ uuid.UUID) ([]*entity.Tuit, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *entity.Tuit) error { return nil },
		deleteFn:     func(_ context.Context, _ uuid.UUID) (int64, error) { return 1, nil },
		existsFn:     func(_ context.Context, _ uuid.UUID) (bool, error) { return true, nil },
	}
}

// fakeReactionRepo is an in-memory repository.ReactionRepository that drives
// the real transition table, so sequences of toggles exercise the same state
// machine the SQL implementation runs.
type fakeReactionRepo struct {
	kinds map[[2]uuid.UUID]entity.ReactionKind
	stats map[uuid.UUID]*entity.Stats
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{
		kinds: make(map[[2]uuid.UUID]entity.ReactionKind),
		stats: make(map[uuid.UUID]*entity.Stats),
	}
}

func (f *fakeReactionRepo) Toggle(_ context.Context, userID, tuitID uuid.UUID, kind entity.ReactionKind) (*repository.ToggleOutcome, error) {
	key := [2]uuid.UUID{userID, tuitID}
	current := f.kinds[key]

	transition := entity.NextReaction(current, kind)
	if transition.Remove {
		delete(f.kinds, key)
	} else {
		f.kinds[key] = transition.Next
	}

	stats := f.stats[tuitID]
	if stats == nil {
		stats = &entity.Stats{}
		f.stats[tuitID] = stats
	}
	stats.Likes += transition.LikesDelta
	stats.Dislikes += transition.DislikesDelta

	return &repository.ToggleOutcome{
		Previous: current,
		Current:  transition.Next,
		Stats:    *stats,
	}, nil
}

func (f *fakeReactionRepo) FindUsersByTuit(_ context.Context, tuitID uuid.UUID, kind entity.ReactionKind) ([]*entity.User, error) {
	var users []*entity.User
	for key, k := range f.kinds {
		if key[1] == tuitID && k == kind {
			users = append(users, &entity.User{ID: key[0]})
		}
	}
	return users, nil
}

func (f *fakeReactionRepo) FindTuitsByUser(_ context.Context, userID uuid.UUID, kind entity.ReactionKind) ([]*entity.Tuit, error) {
	var tuits []*entity.Tuit
	for key, k := range f.kinds {
		if key[0] == userID && k == kind {
			tuits = append(tuits, &entity.Tuit{ID: key[1]})
		}
	}
	return tuits, nil
}

func (f *fakeReactionRepo) CountByTuit(_ context.Context, tuitID uuid.UUID, kind entity.ReactionKind) (int64, error) {
	var count int64
	for key, k := range f.kinds {
		if key[1] == tuitID && k == kind {
			count++
		}
	}
	return count, nil
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn        func(context.Context, uuid.UUID, uuid.UUID) error
	deleteFn        func(context.Context, uuid.UUID, uuid.UUID) (int64, error)
	findFollowingFn func(context.Context, uuid.UUID) ([]*entity.User, error)
	findFollowersFn func(context.Context, uuid.UUID) ([]*entity.User, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FindFollowing(ctx context.Context, followerID uuid.UUID) ([]*entity.User, error) {
	return s.findFollowingFn(ctx, followerID)
}
func (s *followRepoStub) FindFollowers(ctx context.Context, followeeID uuid.UUID) ([]*entity.User, error) {
	return s.findFollowersFn(ctx, followeeID)
}

// bookmarkRepoStub is a stub for repository.BookmarkRepository.
type bookmarkRepoStub struct {
	createFn          func(context.Context, uuid.UUID, uuid.UUID) error
	deleteFn          func(context.Context, uuid.UUID, uuid.UUID) (int64, error)
	findTuitsByUserFn func(context.Context, uuid.UUID) ([]*entity.Tuit, error)
}

func (s *bookmarkRepoStub) Create(ctx context.Context, userID, tuitID uuid.UUID) error {
	return s.createFn(ctx, userID, tuitID)
}
func (s *bookmarkRepoStub) Delete(ctx context.Context, userID, tuitID uuid.UUID) (int64, error) {
	return s.deleteFn(ctx, userID, tuitID)
}
func (s *bookmarkRepoStub) FindTuitsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	return s.findTuitsByUserFn(ctx, userID)
}

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createFn           func(context.Context, *entity.Message) error
	findConversationFn func(context.Context, uuid.UUID, uuid.UUID) ([]*entity.Message, error)
	findSentFn         func(context.Context, uuid.UUID) ([]*entity.Message, error)
	findReceivedFn     func(context.Context, uuid.UUID) ([]*entity.Message, error)
	deleteFn           func(context.Context, uuid.UUID) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *entity.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	return s.findConversationFn(ctx, userA, userB)
}
func (s *messageRepoStub) FindSent(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	return s.findSentFn(ctx, userID)
}
func (s *messageRepoStub) FindReceived(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	return s.findReceivedFn(ctx, userID)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteFn(ctx, id)
}

// searchStub records index and delete calls.
type searchStub struct {
	indexedTuits []string
	deletedTuits []string
	indexedUsers []string
	deletedUsers []string
}

func (s *searchStub) IndexTuit(tuit *entity.Tuit) error {
	s.indexedTuits = append(s.indexedTuits, tuit.ID.String())
	return nil
}
func (s *searchStub) DeleteTuit(id string) error {
	s.deletedTuits = append(s.deletedTuits, id)
	return nil
}
func (s *searchStub) IndexUser(user *entity.User) error {
	s.indexedUsers = append(s.indexedUsers, user.Username)
	return nil
}
func (s *searchStub) DeleteUser(id string) error {
	s.deletedUsers = append(s.deletedUsers, id)
	return nil
}
func (s *searchStub) Search(_ string, _ int64) (*search.Results, error) {
	return &search.Results{}, nil
}

// imageStorageStub is a stub for storage.ImageStorage.
type imageStorageStub struct {
	uploadFn func(context.Context, string, string) (string, error)
	deleted  []string
}

func (s *imageStorageStub) UploadImage(ctx context.Context, _ io.Reader, folder, fileName string) (string, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, folder, fileName)
	}
	return "https://images.example/" + folder + "/" + fileName, nil
}
func (s *imageStorageStub) DeleteImage(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}
