package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongWriteRequest_ArtistPresence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantValue int
	}{
		{name: "absent", body: `{"title":"x"}`, wantSet: false},
		{name: "null", body: `{"artist_id":null}`, wantSet: true, wantValid: false},
		{name: "value", body: `{"artist_id":7}`, wantSet: true, wantValid: true, wantValue: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SongWriteRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.ArtistID.Set)
			assert.Equal(t, tt.wantValid, req.ArtistID.Valid)
			assert.Equal(t, tt.wantValue, req.ArtistID.Value)
		})
	}
}

func TestSongWriteRequest_GenreIDsAbsentVersusEmpty(t *testing.T) {
	var absent SongWriteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &absent))
	assert.Nil(t, absent.GenreIDs)

	var empty SongWriteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"genre_ids":[]}`), &empty))
	require.NotNil(t, empty.GenreIDs)
	assert.Empty(t, *empty.GenreIDs)
}

func TestSongWriteRequest_RejectsWrongType(t *testing.T) {
	var req SongWriteRequest
	assert.Error(t, json.Unmarshal([]byte(`{"artist_id":"seven"}`), &req))
}

func TestOptional_Ptr(t *testing.T) {
	assert.Nil(t, Optional[int]{}.Ptr())
	assert.Nil(t, Null[int]().Ptr())
	assert.Equal(t, 3, *Some(3).Ptr())
}

func TestOptional_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
	}{A: Some(1), B: Null[int]()})

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":null}`, string(data))
}
