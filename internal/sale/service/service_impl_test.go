package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/vendahub/salesops/internal/clock"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	memberrepo "github.com/vendahub/salesops/internal/member/repository"
	"github.com/vendahub/salesops/internal/sale/domain"
	salerepo "github.com/vendahub/salesops/internal/sale/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.Sale{},
		&domain.Student{},
		&domain.Course{},
		&domain.ScoringRule{},
		&memberdomain.Member{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         conn,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)),
		Repo:       salerepo.Provide(),
		MemberRepo: memberrepo.Provide(),
	})
	return svc, conn
}

func seedSale(t *testing.T, conn *gorm.DB, sale domain.Sale) domain.Sale {
	t.Helper()
	if sale.SubmittedAt.IsZero() {
		sale.SubmittedAt = time.Date(2026, time.August, 8, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, conn.Create(&sale).Error)
	return sale
}

func TestAssemble_ResolvesRelations(t *testing.T) {
	svc, conn := newTestService(t)

	seller := memberdomain.Member{
		ID: snowflake.ID(20), Name: "Carlos", Email: "carlos@vendahub.com.br",
		Role: memberdomain.RoleVendedor, Level: memberdomain.LevelPleno, Active: true,
	}
	require.NoError(t, conn.Create(&seller).Error)
	course := domain.Course{ID: snowflake.ID(5), Name: "Inglês Completo", Active: true}
	require.NoError(t, conn.Create(&course).Error)
	student := domain.Student{ID: snowflake.ID(7), Name: "Maria Silva", Email: "maria@exemplo.com.br"}
	require.NoError(t, conn.Create(&student).Error)

	sale := seedSale(t, conn, domain.Sale{
		ID:             snowflake.ID(100),
		SellerID:       seller.ID,
		CourseID:       course.ID,
		ExpectedPoints: 5,
		FormAnswers:    datatypes.JSONMap{"email": "maria@exemplo.com.br"},
	})

	view, err := svc.Assemble(context.Background(), sale.ID.String())
	require.NoError(t, err)

	require.NotNil(t, view.Student)
	assert.Equal(t, student.ID, view.Student.ID)
	require.NotNil(t, view.Course)
	assert.Equal(t, "Inglês Completo", view.Course.Name)
	require.NotNil(t, view.Seller)
	assert.Equal(t, seller.ID, view.Seller.ID)
	assert.Equal(t, 5.0, view.Points)

	// The email match is written back as a permanent link.
	var reloaded domain.Sale
	require.NoError(t, conn.First(&reloaded, "id = ?", sale.ID).Error)
	require.NotNil(t, reloaded.StudentID)
	assert.Equal(t, student.ID, *reloaded.StudentID)
}

func TestAssemble_CreatesStudentFromAnswers(t *testing.T) {
	svc, conn := newTestService(t)

	sale := seedSale(t, conn, domain.Sale{
		ID:             snowflake.ID(100),
		SellerID:       snowflake.ID(20),
		CourseID:       snowflake.ID(5),
		ExpectedPoints: 3,
		FormAnswers: datatypes.JSONMap{
			"nome":     "João Pereira",
			"telefone": "11987654321",
		},
	})

	view, err := svc.Assemble(context.Background(), sale.ID.String())
	require.NoError(t, err)

	require.NotNil(t, view.Student)
	assert.Equal(t, "João Pereira", view.Student.Name)
	assert.Equal(t, "11987654321", view.Student.Phone)

	var count int64
	require.NoError(t, conn.Model(&domain.Student{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssemble_MissingRelationsStayNil(t *testing.T) {
	svc, conn := newTestService(t)

	sale := seedSale(t, conn, domain.Sale{
		ID:             snowflake.ID(100),
		SellerID:       snowflake.ID(999),
		CourseID:       snowflake.ID(999),
		ExpectedPoints: 3,
	})

	view, err := svc.Assemble(context.Background(), sale.ID.String())
	require.NoError(t, err)

	assert.Nil(t, view.Student)
	assert.Nil(t, view.Course)
	assert.Nil(t, view.Seller)
	assert.Equal(t, 3.0, view.Points)
}

func TestAssemble_RepairsImplausiblePoints(t *testing.T) {
	svc, conn := newTestService(t)

	require.NoError(t, conn.Create(&domain.ScoringRule{
		ID: snowflake.ID(1), Field: "curso", Match: "Inglês Completo", Points: 5, Active: true,
	}).Error)
	require.NoError(t, conn.Create(&domain.ScoringRule{
		ID: snowflake.ID(2), Field: "material", Match: "sim", Points: 1, Active: true,
	}).Error)
	require.NoError(t, conn.Model(&domain.ScoringRule{}).
		Where("id = ?", snowflake.ID(2)).
		Update("active", false).Error)

	sale := seedSale(t, conn, domain.Sale{
		ID:             snowflake.ID(100),
		SellerID:       snowflake.ID(20),
		CourseID:       snowflake.ID(5),
		ExpectedPoints: 9999,
		FormAnswers: datatypes.JSONMap{
			"curso":    "inglês completo",
			"material": "sim",
		},
	})

	view, err := svc.Assemble(context.Background(), sale.ID.String())
	require.NoError(t, err)

	// Only the active rule contributes, and the repair is persisted.
	assert.Equal(t, 5.0, view.Points)
	var reloaded domain.Sale
	require.NoError(t, conn.First(&reloaded, "id = ?", sale.ID).Error)
	assert.Equal(t, 5.0, reloaded.ExpectedPoints)
}

func TestApprove_MarksMatriculado(t *testing.T) {
	svc, conn := newTestService(t)

	sale := seedSale(t, conn, domain.Sale{
		ID:             snowflake.ID(100),
		SellerID:       snowflake.ID(20),
		CourseID:       snowflake.ID(5),
		Status:         domain.StatusPendente,
		ExpectedPoints: 3,
	})

	approved, err := svc.Approve(context.Background(), sale.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMatriculado, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	_, err = svc.Approve(context.Background(), "77")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
