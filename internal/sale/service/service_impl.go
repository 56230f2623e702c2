package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendahub/salesops/internal/clock"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
	"github.com/vendahub/salesops/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	MemberRepo memberdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	memberRepo memberdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("sale.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		memberRepo: p.MemberRepo,
	}
}

// Assemble builds the denormalized sale view. Each relation resolves
// independently and a miss leaves the field nil; there is no transaction
// across the student write-backs, so a created student with a failed link is
// possible and repaired on the next assembly.
func (s *Service) Assemble(ctx context.Context, id string) (domain.SaleView, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.SaleView{}, domain.ErrInvalidID
	}

	sale, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return domain.SaleView{}, err
	}
	if sale == nil {
		return domain.SaleView{}, domain.ErrNotFound
	}

	student := s.resolveStudent(ctx, sale)
	course := s.resolveCourse(ctx, sale)
	seller := s.resolveSeller(ctx, sale)

	if domain.PointsImplausible(sale.ExpectedPoints) {
		s.repairExpectedPoints(ctx, sale)
	}

	return domain.SaleView{
		Sale:          *sale,
		Student:       student,
		Course:        course,
		Seller:        seller,
		EffectiveDate: domain.EffectiveDate(*sale).Format(time.RFC3339),
		Points:        domain.Points(*sale),
	}, nil
}

func (s *Service) Approve(ctx context.Context, id string) (domain.Sale, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	if err := s.repo.SetStatus(ctx, s.db, saleID, domain.StatusMatriculado, now); err != nil {
		return domain.Sale{}, err
	}

	sale, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	return *sale, nil
}

// resolveStudent follows the lookup chain: linked id, form email, form name,
// then creates a new student from the form answers. Lookup failures only log.
func (s *Service) resolveStudent(ctx context.Context, sale *domain.Sale) *domain.Student {
	if sale.StudentID != nil {
		student, err := s.repo.FindStudentByID(ctx, s.db, *sale.StudentID)
		if err != nil {
			s.log.Warn("student lookup by id failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
			return nil
		}
		if student != nil {
			return student
		}
	}

	email := domain.AnswerString(sale.FormAnswers, "email", "e-mail", "email_aluno")
	if email != "" {
		student, err := s.repo.FindStudentByEmail(ctx, s.db, email)
		if err != nil {
			s.log.Warn("student lookup by email failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		} else if student != nil {
			s.linkStudent(ctx, sale, student)
			return student
		}
	}

	name := domain.AnswerString(sale.FormAnswers, "nome", "name", "nome_aluno", "nome_completo")
	if name != "" {
		student, err := s.repo.FindStudentByName(ctx, s.db, name)
		if err != nil {
			s.log.Warn("student lookup by name failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		} else if student != nil {
			s.linkStudent(ctx, sale, student)
			return student
		}
	}

	if name == "" && email == "" {
		return nil
	}
	if name == "" {
		name = "Nome não informado"
	}

	student := &domain.Student{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.ToLower(email),
		Phone:     domain.AnswerString(sale.FormAnswers, "telefone", "phone", "whatsapp", "celular"),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertStudent(ctx, s.db, student); err != nil {
		s.log.Warn("student create failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		return nil
	}
	s.linkStudent(ctx, sale, student)
	return student
}

func (s *Service) linkStudent(ctx context.Context, sale *domain.Sale, student *domain.Student) {
	if err := s.repo.LinkStudent(ctx, s.db, sale.ID, student.ID); err != nil {
		s.log.Warn("student link failed",
			zap.String("sale_id", sale.ID.String()),
			zap.String("student_id", student.ID.String()),
			zap.Error(err),
		)
		return
	}
	sale.StudentID = &student.ID
}

func (s *Service) resolveCourse(ctx context.Context, sale *domain.Sale) *domain.Course {
	course, err := s.repo.FindCourseByID(ctx, s.db, sale.CourseID)
	if err != nil {
		s.log.Warn("course lookup failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		return nil
	}
	return course
}

func (s *Service) resolveSeller(ctx context.Context, sale *domain.Sale) *memberdomain.Member {
	seller, err := s.memberRepo.FindByID(ctx, s.db, sale.SellerID)
	if err != nil {
		s.log.Warn("seller lookup failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		return nil
	}
	return seller
}

func (s *Service) repairExpectedPoints(ctx context.Context, sale *domain.Sale) {
	rules, err := s.repo.ListActiveScoringRules(ctx, s.db)
	if err != nil {
		s.log.Warn("scoring rules load failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		return
	}

	recomputed := domain.ScorePoints(sale.FormAnswers, rules)
	if err := s.repo.UpdateExpectedPoints(ctx, s.db, sale.ID, recomputed); err != nil {
		s.log.Warn("expected points write-back failed", zap.String("sale_id", sale.ID.String()), zap.Error(err))
		return
	}
	sale.ExpectedPoints = recomputed
}
