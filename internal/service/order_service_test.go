package service

import (
	"testing"
	"time"

	"github.com/quizdesk/classroom/internal/apperr"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc     OrderService
	course  *model.Course
	orders  *fakeOrderRepo
	gateway *fakeGateway
	base    time.Time
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return base }
	t.Cleanup(func() { nowFunc = time.Now })

	course := &model.Course{ID: 1, Slug: "go-basics", Title: "Go Basics", Price: 100000}
	orders := newFakeOrderRepo()
	gateway := &fakeGateway{}
	svc := NewOrderService(newFakeCourseRepo(course), orders, gateway)
	return &orderFixture{svc: svc, course: course, orders: orders, gateway: gateway, base: base}
}

func (f *orderFixture) withDiscount(price int64, start, end time.Time, active bool) {
	f.orders.discounts[f.course.ID] = &model.CourseDiscount{
		CourseID:      f.course.ID,
		DiscountPrice: price,
		StartDate:     start,
		EndDate:       end,
		IsActive:      active,
	}
}

func orderReq() dto.OrderCreateDTO {
	return dto.OrderCreateDTO{UserID: 7, Name: "Dana", Email: "dana@example.com"}
}

func TestOrderCourseWithActiveDiscount(t *testing.T) {
	f := newOrderFixture(t)
	f.withDiscount(80000, f.base.Add(-time.Hour), f.base.Add(time.Hour), true)

	resp, err := f.svc.OrderCourse("go-basics", orderReq())
	require.NoError(t, err)

	assert.Equal(t, int64(80000), resp.TotalPrice)
	require.NotNil(t, resp.TotalDiscount)
	assert.Equal(t, int64(20000), *resp.TotalDiscount)
	assert.Equal(t, model.OrderStatusPending, resp.Status)
	assert.Equal(t, int64(80000), f.gateway.lastAmount)
}

func TestOrderCourseDiscountWindowPast(t *testing.T) {
	f := newOrderFixture(t)
	f.withDiscount(80000, f.base.Add(-48*time.Hour), f.base.Add(-24*time.Hour), true)

	resp, err := f.svc.OrderCourse("go-basics", orderReq())
	require.NoError(t, err)

	assert.Equal(t, int64(100000), resp.TotalPrice)
	assert.Nil(t, resp.TotalDiscount)
}

func TestOrderCourseDiscountBoundaryExclusive(t *testing.T) {
	// Boundary equality does not count as inside the window.
	f := newOrderFixture(t)
	f.withDiscount(80000, f.base, f.base.Add(time.Hour), true)

	resp, err := f.svc.OrderCourse("go-basics", orderReq())
	require.NoError(t, err)
	assert.Equal(t, int64(100000), resp.TotalPrice)
	assert.Nil(t, resp.TotalDiscount)
}

func TestOrderCourseInactiveDiscount(t *testing.T) {
	f := newOrderFixture(t)
	f.withDiscount(80000, f.base.Add(-time.Hour), f.base.Add(time.Hour), false)

	resp, err := f.svc.OrderCourse("go-basics", orderReq())
	require.NoError(t, err)
	assert.Equal(t, int64(100000), resp.TotalPrice)
	assert.Nil(t, resp.TotalDiscount)
}

func TestOrderFreeCourse(t *testing.T) {
	f := newOrderFixture(t)
	f.course.IsFree = true

	_, err := f.svc.OrderCourse("go-basics", orderReq())
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
	assert.Zero(t, f.gateway.calls)
}

func TestOrderUnknownCourse(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.OrderCourse("no-such-course", orderReq())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOrderGatewayFailureRemovesPendingOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.gateway.fail = true

	_, err := f.svc.OrderCourse("go-basics", orderReq())
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))

	// No gateway-id-less order survives.
	assert.Empty(t, f.orders.orders)
	assert.Len(t, f.orders.deleted, 1)
}

func TestOrderSuccessPersistsGatewayInfo(t *testing.T) {
	f := newOrderFixture(t)

	resp, err := f.svc.OrderCourse("go-basics", orderReq())
	require.NoError(t, err)
	require.NotNil(t, resp.CheckoutURL)

	stored, err := f.orders.FindByUUID(resp.OrderUUID)
	require.NoError(t, err)
	require.NotNil(t, stored.GatewayID)
	assert.Equal(t, "tok-"+resp.OrderUUID, *stored.GatewayID)
	assert.Equal(t, resp.OrderUUID, f.gateway.lastCorrID)
}
