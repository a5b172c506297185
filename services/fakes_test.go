package services

import (
	"context"
	"io"
	"time"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
	"github.com/vamshigadde09/PickleMatch-sub001/repositories"
	"github.com/vamshigadde09/PickleMatch-sub001/storage"
)

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []int) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateAvatarKey(_ context.Context, id int, key *string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.AvatarKey = key
	return nil
}

type fakeRoomRepo struct {
	rooms   map[int]*models.Room
	members map[int][]int
	nextID  int
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[int]*models.Room), members: make(map[int][]int)}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *models.Room) error {
	r.nextID++
	room.ID = r.nextID
	r.rooms[room.ID] = room
	r.members[room.ID] = []int{room.HostID}
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id int) (*models.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, repositories.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) GetByInviteCode(_ context.Context, code string) (*models.Room, error) {
	for _, room := range r.rooms {
		if room.InviteCode == code {
			copied := *room
			return &copied, nil
		}
	}
	return nil, repositories.ErrRoomNotFound
}

func (r *fakeRoomRepo) ListByMember(_ context.Context, userID int) ([]*models.Room, error) {
	var out []*models.Room
	for roomID, userIDs := range r.members {
		for _, id := range userIDs {
			if id == userID {
				copied := *r.rooms[roomID]
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) AddMember(_ context.Context, roomID, userID int) error {
	for _, id := range r.members[roomID] {
		if id == userID {
			return repositories.ErrRoomMemberConflict
		}
	}
	r.members[roomID] = append(r.members[roomID], userID)
	return nil
}

func (r *fakeRoomRepo) ListMembers(_ context.Context, roomID int) ([]*models.User, error) {
	var out []*models.User
	for _, id := range r.members[roomID] {
		out = append(out, &models.User{ID: id})
	}
	return out, nil
}

func (r *fakeRoomRepo) UpdateCoverKey(_ context.Context, id int, key *string) error {
	room, ok := r.rooms[id]
	if !ok {
		return repositories.ErrRoomNotFound
	}
	room.CoverKey = key
	return nil
}

type fakeStatsRepo struct {
	byUserID map[int]*models.PlayerStats
	credits  []repositories.PlayerCredit
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{byUserID: make(map[int]*models.PlayerStats)}
}

func (r *fakeStatsRepo) Credit(_ context.Context, _ repositories.SQLExecutor, credit repositories.PlayerCredit) error {
	r.credits = append(r.credits, credit)
	return nil
}

func (r *fakeStatsRepo) GetByUserID(_ context.Context, userID int) (*models.PlayerStats, error) {
	stats, ok := r.byUserID[userID]
	if !ok {
		return nil, repositories.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (r *fakeStatsRepo) GetByContact(_ context.Context, _ string) (*models.PlayerStats, error) {
	return nil, repositories.ErrStatsNotFound
}

type fakeGameRepo struct {
	games      map[int]*models.Game
	statuses   map[int]models.GameStatus
	medals     map[int]*models.MedalSummary
	pointsDone map[int]bool
	nextID     int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{
		games:      make(map[int]*models.Game),
		statuses:   make(map[int]models.GameStatus),
		medals:     make(map[int]*models.MedalSummary),
		pointsDone: make(map[int]bool),
	}
}

func (r *fakeGameRepo) Create(_ context.Context, _ repositories.SQLExecutor, game *models.Game) error {
	r.nextID++
	game.ID = r.nextID
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	copied := *game
	return &copied, nil
}

func (r *fakeGameRepo) ListByRoom(_ context.Context, roomID int) ([]*models.Game, error) {
	var out []*models.Game
	for _, g := range r.games {
		if g.RoomID == roomID {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) ListStaleLive(_ context.Context, _ time.Time) ([]*models.Game, error) {
	return nil, nil
}

func (r *fakeGameRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.GameStatus) error {
	r.statuses[id] = status
	return nil
}

func (r *fakeGameRepo) AdvanceRound(_ context.Context, _ repositories.SQLExecutor, _, _, _ int) error {
	return nil
}

func (r *fakeGameRepo) SetDominantWinner(_ context.Context, _ repositories.SQLExecutor, _ int, _ *string) error {
	return nil
}

func (r *fakeGameRepo) SetMedals(_ context.Context, _ repositories.SQLExecutor, id int, medals *models.MedalSummary) error {
	r.medals[id] = medals
	return nil
}

func (r *fakeGameRepo) MarkPointsAssigned(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if r.pointsDone[id] {
		return repositories.ErrGamePointsDone
	}
	r.pointsDone[id] = true
	return nil
}

type fakeTeamRepo struct {
	byGame map[int][]*models.Team
	points map[int]float64
	medals map[int]models.MedalColor
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		byGame: make(map[int][]*models.Team),
		points: make(map[int]float64),
		medals: make(map[int]models.MedalColor),
	}
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	r.nextID++
	team.ID = r.nextID
	r.byGame[team.GameID] = append(r.byGame[team.GameID], team)
	return nil
}

func (r *fakeTeamRepo) ListByGame(_ context.Context, _ repositories.SQLExecutor, gameID int) ([]*models.Team, error) {
	return r.byGame[gameID], nil
}

func (r *fakeTeamRepo) AddWin(_ context.Context, _ repositories.SQLExecutor, _ int) error {
	return nil
}

func (r *fakeTeamRepo) AddPoints(_ context.Context, _ repositories.SQLExecutor, id int, points float64) error {
	r.points[id] += points
	return nil
}

func (r *fakeTeamRepo) UpdateMedal(_ context.Context, _ repositories.SQLExecutor, id int, medal models.MedalColor) error {
	r.medals[id] = medal
	return nil
}

type fakeUploader struct {
	uploads map[string]string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string]string)}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) (*storage.UploadResult, error) {
	u.uploads[key] = contentType
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
