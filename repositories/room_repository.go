package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomMemberConflict = errors.New("user is already a member of the room")
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id int) (*models.Room, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Room, error)
	ListByMember(ctx context.Context, userID int) ([]*models.Room, error)
	AddMember(ctx context.Context, roomID, userID int) error
	ListMembers(ctx context.Context, roomID int) ([]*models.User, error)
	UpdateCoverKey(ctx context.Context, id int, key *string) error
}

type postgresRoomRepository struct {
	db *sql.DB
}

func NewPostgresRoomRepository(db *sql.DB) RoomRepository {
	return &postgresRoomRepository{db: db}
}

const roomColumns = `id, name, sport, host_id, invite_code, location, cover_key, created_at`

func (r *postgresRoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (name, sport, host_id, invite_code, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		room.Name,
		room.Sport,
		room.HostID,
		room.InviteCode,
		room.Location,
	).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	// The host is always a member of their own room.
	if err := r.AddMember(ctx, room.ID, room.HostID); err != nil && !errors.Is(err, ErrRoomMemberConflict) {
		return err
	}
	return nil
}

func (r *postgresRoomRepository) GetByID(ctx context.Context, id int) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return r.scanRoom(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRoomRepository) GetByInviteCode(ctx context.Context, code string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE invite_code = $1`
	return r.scanRoom(r.db.QueryRowContext(ctx, query, code))
}

func (r *postgresRoomRepository) ListByMember(ctx context.Context, userID int) ([]*models.Room, error) {
	query := `
		SELECT r.id, r.name, r.sport, r.host_id, r.invite_code, r.location, r.cover_key, r.created_at
		FROM rooms r
		JOIN room_members m ON m.room_id = r.id
		WHERE m.user_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms for user %d: %w", userID, err)
	}
	defer rows.Close()

	rooms := make([]*models.Room, 0)
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Sport, &room.HostID, &room.InviteCode, &room.Location, &room.CoverKey, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

func (r *postgresRoomRepository) AddMember(ctx context.Context, roomID, userID int) error {
	query := `INSERT INTO room_members (room_id, user_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, roomID, userID); err != nil {
		if isUniqueViolation(err, "") {
			return ErrRoomMemberConflict
		}
		if isForeignKeyViolation(err) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to add member %d to room %d: %w", userID, roomID, err)
	}
	return nil
}

func (r *postgresRoomRepository) ListMembers(ctx context.Context, roomID int) ([]*models.User, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.phone, u.password_hash, u.role, u.avatar_key, u.created_at
		FROM users u
		JOIN room_members m ON m.user_id = u.id
		WHERE m.room_id = $1
		ORDER BY m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of room %d: %w", roomID, err)
	}
	defer rows.Close()

	members := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.AvatarKey, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, &u)
	}
	return members, rows.Err()
}

func (r *postgresRoomRepository) UpdateCoverKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rooms SET cover_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("failed to update cover key for room %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRoomNotFound)
}

func (r *postgresRoomRepository) scanRoom(row *sql.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(&room.ID, &room.Name, &room.Sport, &room.HostID, &room.InviteCode, &room.Location, &room.CoverKey, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to scan room: %w", err)
	}
	return &room, nil
}
