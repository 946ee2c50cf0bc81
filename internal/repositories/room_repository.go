package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codepair/internal/models"
	"codepair/internal/session"
)

var ErrNotParticipant = errors.New("not a participant of this room")

type RoomRepository struct {
	DB *gorm.DB
}

func (r *RoomRepository) CreateRoom(room *models.Room) error {
	return r.DB.Create(room).Error
}

func (r *RoomRepository) GetRoom(roomID string) (*models.Room, error) {
	var room models.Room
	err := r.DB.First(&room, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, session.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms returns all public rooms plus, when ownerID is non-empty, that
// owner's private rooms.
func (r *RoomRepository) ListRooms(ownerID string) ([]models.Room, error) {
	var rooms []models.Room
	q := r.DB.Where("is_private = ?", false)
	if ownerID != "" {
		q = q.Or("owner_id = ?", ownerID)
	}
	err := q.Order("created_at").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) UpdateRoom(room *models.Room) error {
	return r.DB.Save(room).Error
}

func (r *RoomRepository) DeleteRoom(roomID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoomParticipant{}, "room_id = ?", roomID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Room{}, "id = ?", roomID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return session.ErrRoomNotFound
		}
		return nil
	})
}

// RoomMeta resolves the metadata the access gate consumes at admission.
func (r *RoomRepository) RoomMeta(ctx context.Context, roomID string) (session.RoomInfo, error) {
	var room models.Room
	err := r.DB.WithContext(ctx).Select("id", "is_private", "owner_id").First(&room, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session.RoomInfo{}, session.ErrRoomNotFound
	}
	if err != nil {
		return session.RoomInfo{}, err
	}
	return session.RoomInfo{ID: room.ID, IsPrivate: room.IsPrivate, OwnerID: room.OwnerID}, nil
}

func (r *RoomRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMember records a (room, user) membership. Re-adding an existing
// member is a no-op, never an error.
func (r *RoomRepository) AddMember(ctx context.Context, roomID, userID string) error {
	participant := models.RoomParticipant{
		ID:     uuid.New().String(),
		RoomID: roomID,
		UserID: userID,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&participant).Error
}

func (r *RoomRepository) RemoveMember(ctx context.Context, roomID, userID string) error {
	result := r.DB.WithContext(ctx).
		Delete(&models.RoomParticipant{}, "room_id = ? AND user_id = ?", roomID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotParticipant
	}
	return nil
}

// ListParticipants returns the users who joined a room, oldest first.
func (r *RoomRepository) ListParticipants(roomID string) ([]models.ParticipantResponse, error) {
	var out []models.ParticipantResponse
	rows, err := r.DB.Model(&models.RoomParticipant{}).
		Select("users.id, users.username, users.email, room_participants.joined_at").
		Joins("JOIN users ON users.id = room_participants.user_id").
		Where("room_participants.room_id = ?", roomID).
		Order("room_participants.joined_at").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.ParticipantResponse
		var joinedAt time.Time
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &joinedAt); err != nil {
			return nil, err
		}
		p.JoinedAt = joinedAt.Format(time.RFC3339)
		out = append(out, p)
	}
	return out, rows.Err()
}
