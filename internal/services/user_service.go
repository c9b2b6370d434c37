package services

import (
	"storehub_backend/internal/repositories"
	"storehub_backend/internal/services/dto"
	"storehub_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	GetUserOrders(userID string, page, pageSize int) (*dto.OrderListResponse, error)
}

type userService struct {
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
}

func NewUserService(userRepo repositories.UserRepository, orderRepo repositories.OrderRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

func (s *userService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	orderCount, err := s.orderRepo.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		Status:        string(user.Status),
		PointsBalance: user.PointsBalance,
		OrderCount:    orderCount,
		CreatedAt:     user.CreatedAt,
	}, nil
}

func (s *userService) GetUserOrders(userID string, page, pageSize int) (*dto.OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := s.orderRepo.FindUserOrders(userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, dto.OrderResponse{
			ID:          orders[i].ID,
			Status:      string(orders[i].Status),
			TotalAmount: orders[i].TotalAmount,
			ItemCount:   orders[i].ItemCount,
			CreatedAt:   orders[i].CreatedAt,
		})
	}

	return &dto.OrderListResponse{
		Orders:     responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}
