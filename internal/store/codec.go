package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/positionfit/positionfit/internal/domain"
)

func encodeUserData(data *domain.UserData) ([]byte, error) {
	if data == nil {
		return nil, errors.New("user data is nil")
	}
	if data.UserID == "" {
		return nil, errors.New("user data has no user id")
	}
	return json.Marshal(data)
}

func decodeUserData(raw []byte) (*domain.UserData, error) {
	var data domain.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data.UserID == "" {
		return nil, fmt.Errorf("stored aggregate has no user id")
	}
	return &data, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
