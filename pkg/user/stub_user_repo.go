package user

import (
	"context"
)

type StubUserRepository struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepository() *StubUserRepository {
	return &StubUserRepository{nextId: 1, data: map[int]User{}}
}

func (s *StubUserRepository) CreateUser(_ context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.data[s.nextId] = user
	return s.nextId, nil
}

func (s *StubUserRepository) GetUser(_ context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepository) GetUserByUid(_ context.Context, uid string) (User, error) {
	for _, u := range s.data {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepository) UpdateUser(_ context.Context, userId int, user User) (User, error) {
	if _, ok := s.data[userId]; !ok {
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	s.data[userId] = user
	return user, nil
}

func (s *StubUserRepository) DeleteUser(_ context.Context, id int) error {
	delete(s.data, id)
	return nil
}

func (s *StubUserRepository) GetAllUsers(_ context.Context) ([]User, error) {
	var users []User
	for _, user := range s.data {
		users = append(users, user)
	}
	return users, nil
}

func (s *StubUserRepository) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	for _, u := range s.data {
		if u.Username == username {
			return false, nil
		}
	}
	return true, nil
}
