package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/entities"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils/storage"
	"github.com/Konstantin-Kleinikov/foodgram/pkg/jwt"
)

type fakeUserRepository struct {
	users   map[uint]*entities.User
	follows map[[2]uint]bool
	nextID  uint
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:   make(map[uint]*entities.User),
		follows: make(map[[2]uint]bool),
		nextID:  1,
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) GetUsers(_ context.Context, _, _ int) ([]entities.User, int64, error) {
	users := make([]entities.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) CreateFollow(_ context.Context, userID, followingID uint) error {
	f.follows[[2]uint{userID, followingID}] = true
	return nil
}

func (f *fakeUserRepository) DeleteFollow(_ context.Context, userID, followingID uint) (bool, error) {
	key := [2]uint{userID, followingID}
	if !f.follows[key] {
		return false, nil
	}
	delete(f.follows, key)
	return true, nil
}

func (f *fakeUserRepository) IsFollowing(_ context.Context, userID, followingID uint) (bool, error) {
	return f.follows[[2]uint{userID, followingID}], nil
}

func (f *fakeUserRepository) GetFollowedAuthors(_ context.Context, userID uint, _, _ int) ([]entities.User, int64, error) {
	var authors []entities.User
	for key := range f.follows {
		if key[0] != userID {
			continue
		}
		if author, ok := f.users[key[1]]; ok {
			authors = append(authors, *author)
		}
	}
	return authors, int64(len(authors)), nil
}

type fakeAuthorRecipes struct {
	recipes map[uint][]entities.Recipe
}

func (f *fakeAuthorRecipes) GetRecipesByAuthor(_ context.Context, authorID uint, limit int) ([]entities.Recipe, error) {
	recipes := f.recipes[authorID]
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (f *fakeAuthorRecipes) CountRecipesByAuthor(_ context.Context, authorID uint) (int64, error) {
	return int64(len(f.recipes[authorID])), nil
}

func newTestUserService(t *testing.T, repo *fakeUserRepository, recipes *fakeAuthorRecipes) UserService {
	t.Setenv("JWT_SECRET", "test-secret")
	if recipes == nil {
		recipes = &fakeAuthorRecipes{recipes: map[uint][]entities.Recipe{}}
	}
	return NewUserService(repo, recipes, jwt.NewJWTService(), storage.AwsS3{})
}

func seedUser(repo *fakeUserRepository, id uint, email, username, password string) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		ID:       id,
		Email:    email,
		Username: username,
		Password: string(hashed),
	}
	repo.users[id] = user
	if id >= repo.nextID {
		repo.nextID = id + 1
	}
	return user
}

func TestRegisterDerivesUsernameFromEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(t, repo, nil)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)

	res, err = service.Register(context.Background(), domain.RegisterRequest{
		Email:     "alice@another.org",
		FirstName: "Alice",
		LastName:  "Jones",
		Password:  "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice1", res.Username)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, 1, "alice@example.com", "alice", "password123")
	service := newTestUserService(t, repo, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = service.Register(context.Background(), domain.RegisterRequest{
		Email:    "other@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(t, repo, nil)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "bob@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	stored := repo.users[res.ID]
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, 1, "alice@example.com", "alice", "password123")
	service := newTestUserService(t, repo, nil)

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AuthToken)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "missing@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestSetPassword(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, 1, "alice@example.com", "alice", "password123")
	service := newTestUserService(t, repo, nil)

	err := service.SetPassword(context.Background(), domain.SetPasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
	}, "1")
	assert.ErrorIs(t, err, domain.ErrPasswordWrong)

	err = service.SetPassword(context.Background(), domain.SetPasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password123",
	}, "1")
	assert.ErrorIs(t, err, domain.ErrPasswordNotChanged)

	err = service.SetPassword(context.Background(), domain.SetPasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword",
	}, "1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[1].Password), []byte("newpassword")))
}

func TestSubscribe(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, 1, "alice@example.com", "alice", "password123")
	seedUser(repo, 2, "bob@example.com", "bob", "password123")
	service := newTestUserService(t, repo, nil)

	_, err := service.Subscribe(context.Background(), "1", "1", 0)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)

	_, err = service.Subscribe(context.Background(), "99", "1", 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	res, err := service.Subscribe(context.Background(), "2", "1", 0)
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Username)
	assert.True(t, res.IsSubscribed)

	_, err = service.Subscribe(context.Background(), "2", "1", 0)
	assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)
}

func TestUnsubscribe(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, 1, "alice@example.com", "alice", "password123")
	seedUser(repo, 2, "bob@example.com", "bob", "password123")
	service := newTestUserService(t, repo, nil)

	err := service.Unsubscribe(context.Background(), "2", "1")
	assert.ErrorIs(t, err, domain.ErrNotFollowing)

	_, err = service.Subscribe(context.Background(), "2", "1", 0)
	require.NoError(t, err)
	assert.NoError(t, service.Unsubscribe(context.Background(), "2", "1"))
}

func TestGetSubscriptionsRespectsRecipesLimit(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, 1, "alice@example.com", "alice", "password123")
	seedUser(repo, 2, "bob@example.com", "bob", "password123")

	recipes := &fakeAuthorRecipes{recipes: map[uint][]entities.Recipe{
		2: {
			{ID: 1, Name: "Pancakes"},
			{ID: 2, Name: "Bread"},
			{ID: 3, Name: "Soup"},
		},
	}}
	service := newTestUserService(t, repo, recipes)

	_, err := service.Subscribe(context.Background(), "2", "1", 0)
	require.NoError(t, err)

	authors, count, err := service.GetSubscriptions(context.Background(), "1", 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, authors, 1)
	assert.Len(t, authors[0].Recipes, 2)
	assert.Equal(t, int64(3), authors[0].RecipesCount)
}
