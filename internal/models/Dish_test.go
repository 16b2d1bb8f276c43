package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDish_UnmarshalWireFields(t *testing.T) {
	payload := `{"isPublished":true,"dishId":"6535","imageUrl":"https://nosh-assignment.s3.ap-south-1.amazonaws.com/jeera-rice.jpg","dishName":"Jeera Rice"}`

	var d Dish
	require.NoError(t, json.Unmarshal([]byte(payload), &d))

	require.NotNil(t, d.Published)
	assert.True(t, *d.Published)
	assert.Equal(t, "6535", d.GetID())
	assert.Equal(t, "Jeera Rice", d.GetName())
	assert.Nil(t, d.ScheduleTime)
	assert.False(t, d.IsScheduled())
}

func TestDish_MissingAndUnknownFieldsAreAbsent(t *testing.T) {
	var d Dish
	require.NoError(t, json.Unmarshal([]byte(`{"dishName":"Paneer Tikka","rating":4.5}`), &d))

	assert.Nil(t, d.Published)
	assert.Nil(t, d.ID)
	assert.Nil(t, d.ImageURL)
	assert.Equal(t, "Paneer Tikka", d.GetName())
}

func TestDish_NullFields(t *testing.T) {
	var d Dish
	require.NoError(t, json.Unmarshal([]byte(`{"dishId":null,"isPublished":null}`), &d))
	assert.Nil(t, d.ID)
	assert.Nil(t, d.Published)
}

func TestDish_MarshalIncludesScheduleTime(t *testing.T) {
	d := &Dish{Name: String("Jeera Rice"), ScheduleTime: String("7:05 AM")}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dishName":"Jeera Rice","scheduleTime":"7:05 AM"}`, string(data))
}

func TestDish_GettersOnNil(t *testing.T) {
	var d *Dish
	assert.Equal(t, "", d.GetID())
	assert.Equal(t, "", d.GetName())
	assert.Equal(t, "", d.GetScheduleTime())
	assert.False(t, d.IsScheduled())
	assert.Nil(t, d.Clone())
}

func TestDish_CloneIsIndependent(t *testing.T) {
	orig := &Dish{
		Published: Bool(false),
		ID:        String("1"),
		ImageURL:  String("https://img/1.jpg"),
		Name:      String("Masala Dosa"),
	}
	cp := orig.Clone()
	assert.Equal(t, orig, cp)

	*cp.Name = "Idli"
	*cp.Published = true
	cp.ScheduleTime = String("8:00 PM")

	assert.Equal(t, "Masala Dosa", orig.GetName())
	assert.False(t, *orig.Published)
	assert.Nil(t, orig.ScheduleTime)
}

func TestCloneDishes(t *testing.T) {
	src := []*Dish{{Name: String("A")}, nil, {Name: String("C")}}
	out := CloneDishes(src)

	require.Len(t, out, 3)
	assert.Nil(t, out[1])
	assert.Equal(t, "C", out[2].GetName())
	assert.NotSame(t, src[0], out[0])
}
