package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/vamshigadde09/PickleMatch-sub001/models"
	"github.com/vamshigadde09/PickleMatch-sub001/repositories"
	"github.com/vamshigadde09/PickleMatch-sub001/storage"
)

const defaultSport = "pickleball"

type CreateRoomInput struct {
	Name     string  `json:"name"`
	Sport    string  `json:"sport"`
	Location *string `json:"location,omitempty"`
}

type RoomService interface {
	CreateRoom(ctx context.Context, hostID int, input CreateRoomInput) (*models.Room, error)
	GetRoom(ctx context.Context, roomID int) (*models.Room, error)
	ListRooms(ctx context.Context, userID int) ([]*models.Room, error)
	JoinByInviteCode(ctx context.Context, userID int, code string) (*models.Room, error)
	IsMember(ctx context.Context, roomID, userID int) (bool, error)
	UploadCover(ctx context.Context, roomID, userID int, contentType string, content io.Reader) (*models.Room, error)
}

type roomService struct {
	roomRepo repositories.RoomRepository
	uploader storage.FileUploader
}

func NewRoomService(roomRepo repositories.RoomRepository, uploader storage.FileUploader) RoomService {
	return &roomService{roomRepo: roomRepo, uploader: uploader}
}

func (s *roomService) CreateRoom(ctx context.Context, hostID int, input CreateRoomInput) (*models.Room, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrRoomNameRequired
	}
	if input.Sport == "" {
		input.Sport = defaultSport
	}

	room := &models.Room{
		Name:       input.Name,
		Sport:      input.Sport,
		HostID:     hostID,
		InviteCode: uuid.NewString(),
		Location:   input.Location,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID int) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	members, err := s.roomRepo.ListMembers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members of room %d: %w", roomID, err)
	}
	room.Members = make([]models.User, 0, len(members))
	for _, m := range members {
		room.Members = append(room.Members, *m)
	}
	populateCoverURL(room, s.uploader)
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context, userID int) ([]*models.Room, error) {
	rooms, err := s.roomRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms of user %d: %w", userID, err)
	}
	for _, room := range rooms {
		populateCoverURL(room, s.uploader)
	}
	return rooms, nil
}

func (s *roomService) JoinByInviteCode(ctx context.Context, userID int, code string) (*models.Room, error) {
	room, err := s.roomRepo.GetByInviteCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if err := s.roomRepo.AddMember(ctx, room.ID, userID); err != nil {
		if errors.Is(err, repositories.ErrRoomMemberConflict) {
			return nil, ErrRoomMemberConflict
		}
		return nil, fmt.Errorf("failed to join room %d: %w", room.ID, err)
	}
	return room, nil
}

func (s *roomService) IsMember(ctx context.Context, roomID, userID int) (bool, error) {
	members, err := s.roomRepo.ListMembers(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to load members of room %d: %w", roomID, err)
	}
	for _, m := range members {
		if m.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *roomService) UploadCover(ctx context.Context, roomID, userID int, contentType string, content io.Reader) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	if room.HostID != userID {
		return nil, ErrForbiddenOperation
	}

	key := fmt.Sprintf("rooms/%d/cover", roomID)
	if _, err := s.uploader.Upload(ctx, key, contentType, content); err != nil {
		return nil, fmt.Errorf("failed to upload cover for room %d: %w", roomID, err)
	}
	if err := s.roomRepo.UpdateCoverKey(ctx, roomID, &key); err != nil {
		return nil, fmt.Errorf("failed to store cover key for room %d: %w", roomID, err)
	}
	room.CoverKey = &key
	populateCoverURL(room, s.uploader)
	return room, nil
}

func populateCoverURL(room *models.Room, uploader storage.FileUploader) {
	if room != nil && room.CoverKey != nil && *room.CoverKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*room.CoverKey)
		room.CoverURL = &url
	}
}
