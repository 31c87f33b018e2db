package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/catalog"
)

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.RLock()
	acct := s.users[strings.ToLower(creds.Email)]
	s.mu.RUnlock()

	if acct == nil || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !acct.user.IsActive {
		writeError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	token, err := s.issueToken(acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, api.AuthResponse{
		Token: token,
		Type:  "Bearer",
		ID:    acct.user.ID,
		Name:  acct.user.Name,
		Email: acct.user.Email,
		Role:  acct.user.Role,
	})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var reg api.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if reg.Password != reg.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	email := strings.ToLower(reg.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	s.nextID++
	s.users[email] = &account{
		user: api.User{
			ID:            s.nextID,
			Name:          reg.Name,
			Email:         email,
			ContactNumber: reg.ContactNumber,
			Role:          api.RoleCustomer,
			IsActive:      true,
			CreatedAt:     time.Now().UTC().Format(time.RFC3339),
			Address:       reg.Address,
			City:          reg.City,
			State:         reg.State,
			PostalCode:    reg.PostalCode,
		},
		passwordHash: hash,
	}

	writeJSON(w, http.StatusCreated, api.Message{Message: "Account created, please sign in"})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	info, _ := accountFromContext(r.Context())

	s.mu.Lock()
	s.revoked[info.jti] = struct{}{}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, api.Message{Message: "Signed out"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	info, _ := accountFromContext(r.Context())

	token, err := s.issueToken(info.acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token, "type": "Bearer"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	info, _ := accountFromContext(r.Context())

	s.mu.RLock()
	user := info.acct.user
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update api.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	info, _ := accountFromContext(r.Context())

	s.mu.Lock()
	user := &info.acct.user
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.ContactNumber != "" {
		user.ContactNumber = update.ContactNumber
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.State != "" {
		user.State = update.State
	}
	if update.PostalCode != "" {
		user.PostalCode = update.PostalCode
	}
	if update.DateOfBirth != "" {
		user.DateOfBirth = update.DateOfBirth
	}
	updated := *user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListMedicines(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)

	s.mu.RLock()
	all := make([]api.Medicine, len(s.medicines))
	copy(all, s.medicines)
	s.mu.RUnlock()

	content := catalog.Paginate(all, page+1, size)
	if content == nil {
		content = []api.Medicine{}
	}

	totalPages := (len(all) + size - 1) / size
	writeJSON(w, http.StatusOK, api.Page[api.Medicine]{
		Content:       content,
		TotalElements: int64(len(all)),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= totalPages-1,
	})
}

func (s *Server) handleSearchMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	s.mu.RLock()
	all := make([]api.Medicine, len(s.medicines))
	copy(all, s.medicines)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, catalog.Apply(all, catalog.Filter{Search: query}))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	categories := catalog.Categories(s.medicines)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleGetMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.medicines {
		if m.ID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Medicine not found")
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req api.NewOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if len(req.OrderItems) == 0 {
		writeError(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}

	info, _ := accountFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []api.OrderItem
	var total float64
	for _, line := range req.OrderItems {
		med, ok := s.findMedicineLocked(line.MedicineID)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown medicine in order")
			return
		}
		if line.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "Quantity must be positive")
			return
		}

		s.nextID++
		items = append(items, api.OrderItem{
			ID:       s.nextID,
			Medicine: med,
			Quantity: line.Quantity,
			Price:    med.Price,
		})
		total += float64(line.Quantity) * med.Price
	}

	s.nextID++
	order := api.Order{
		ID:              s.nextID,
		UserID:          info.acct.user.ID,
		OrderItems:      items,
		TotalAmount:     total,
		Status:          api.OrderPending,
		ShippingAddress: req.ShippingAddress,
		PrescriptionURL: req.PrescriptionURL,
		OrderDate:       time.Now().UTC().Format(time.RFC3339),
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   "PENDING",
	}
	s.orders = append(s.orders, order)

	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	info, _ := accountFromContext(r.Context())
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)

	s.mu.RLock()
	var mine []api.Order
	for _, o := range s.orders {
		if o.UserID == info.acct.user.ID || info.acct.user.Role == api.RoleAdmin {
			mine = append(mine, o)
		}
	}
	s.mu.RUnlock()

	start := page * size
	content := []api.Order{}
	if start < len(mine) {
		content = mine[start:min(start+size, len(mine))]
	}

	totalPages := (len(mine) + size - 1) / size
	writeJSON(w, http.StatusOK, api.Page[api.Order]{
		Content:       content,
		TotalElements: int64(len(mine)),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= totalPages-1,
	})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	info, _ := accountFromContext(r.Context())

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			if o.UserID != info.acct.user.ID && info.acct.user.Role != api.RoleAdmin {
				writeError(w, http.StatusForbidden, "Not your order")
				return
			}
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Order not found")
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	info, _ := accountFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].UserID != info.acct.user.ID && info.acct.user.Role != api.RoleAdmin {
			writeError(w, http.StatusForbidden, "Not your order")
			return
		}
		if s.orders[i].Status != api.OrderPending && s.orders[i].Status != api.OrderConfirmed {
			writeError(w, http.StatusConflict, "Order can no longer be cancelled")
			return
		}
		s.orders[i].Status = api.OrderCancelled
		writeJSON(w, http.StatusOK, api.Message{Message: "Order cancelled"})
		return
	}
	writeError(w, http.StatusNotFound, "Order not found")
}

func (s *Server) issueToken(acct *account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": acct.user.Email,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) findMedicineLocked(id int64) (api.Medicine, bool) {
	for _, m := range s.medicines {
		if m.ID == id {
			return m, true
		}
	}
	return api.Medicine{}, false
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	// Zero is rejected too: size feeds a page-count division.
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
