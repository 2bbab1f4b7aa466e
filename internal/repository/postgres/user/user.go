package user

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/auth"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByEmail is the sign-in lookup. It returns the password hash, so it
// must never feed a response body directly.
func (r Repository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("deleted_at IS NULL AND lower(email) = lower(?)", email).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.User{}, errors.Wrap(err, "selecting user by email")
	}

	return detail, nil
}

func (r Repository) GetByUserID(ctx context.Context, userID string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("deleted_at IS NULL AND user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.User{}, errors.Wrap(err, "selecting user")
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			u.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
		(u.nip ilike '%s' OR u.first_name ilike '%s' OR u.last_name ilike '%s' OR u.email ilike '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if filter.Role != nil {
		role := strings.Replace(*filter.Role, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND u.role = '%s'", role)
	}

	orderQuery := "ORDER BY u.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.user_id,
			u.first_name,
			u.last_name,
			u.email,
			u.nip,
			u.position,
			u.role
		FROM users u
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FirstName,
			&detail.LastName,
			&detail.Email,
			&detail.Nip,
			&detail.Position,
			&detail.Role); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(u.id)
		FROM users u
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "FirstName", "Email", "Password", "Role"); err != nil {
		return CreateResponse{}, err
	}

	if *request.Role != auth.RoleAdmin && *request.Role != auth.RoleEmployee {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be ADMIN or EMPLOYEE"), http.StatusBadRequest)
	}

	emailExists := true
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN
			(SELECT id FROM users WHERE lower(email) = lower($1) AND deleted_at IS NULL) IS NOT NULL
			THEN true ELSE false END`, *request.Email).Scan(&emailExists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "email check"), http.StatusInternalServerError)
	}
	if emailExists {
		return CreateResponse{}, web.NewRequestError(errors.New("email is used"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashed := string(hash)

	userID := uuid.NewString()

	var response CreateResponse
	response.UserID = &userID
	response.FirstName = request.FirstName
	response.LastName = request.LastName
	response.Email = request.Email
	response.Nip = request.Nip
	response.Position = request.Position
	response.Password = &hashed
	response.Role = request.Role
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "UserID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND user_id = ?", request.UserID)

	if request.FirstName != nil {
		q.Set("first_name = ?", request.FirstName)
	}
	if request.LastName != nil {
		q.Set("last_name = ?", request.LastName)
	}
	if request.Nip != nil {
		q.Set("nip = ?", request.Nip)
	}
	if request.Position != nil {
		q.Set("position = ?", request.Position)
	}
	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}
	if request.Role != nil {
		if *request.Role != auth.RoleAdmin && *request.Role != auth.RoleEmployee {
			return web.NewRequestError(errors.New("incorrect role. role should be ADMIN or EMPLOYEE"), http.StatusBadRequest)
		}
		q.Set("role = ?", request.Role)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "users", id)
}
