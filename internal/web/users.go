package web

import (
	"net/http"
	"net/url"
	"strconv"

	"mini-admin/internal/model"
	"mini-admin/internal/service"

	"github.com/google/uuid"
)

type usersData struct {
	base
	Search string
	Role   string
	Table  Table
	State  model.FormState
}

var userColumns = []Column[model.UserSummary]{
	{Header: "名前", Value: func(u model.UserSummary) string { return u.Name }, Link: func(u model.UserSummary) string { return "/users/" + u.ID.String() }},
	{Header: "メールアドレス", Value: func(u model.UserSummary) string { return u.Email }},
	{Header: "権限", Value: func(u model.UserSummary) string { return roleLabel(u.Role) }},
	{Header: "投稿数", Value: func(u model.UserSummary) string { return strconv.Itoa(u.Count.Posts) }},
	{Header: "商品数", Value: func(u model.UserSummary) string { return strconv.Itoa(u.Count.Products) }},
	{Header: "作成日", Value: func(u model.UserSummary) string { return formatDate(u.CreatedAt) }},
}

// Users handles GET /users.
func (p *Pages) Users(w http.ResponseWriter, r *http.Request) {
	p.renderUsers(w, r, r.URL, model.FormState{})
}

// renderUsers draws the list as seen at current, which differs from r.URL
// when a refused delete redisplays it.
func (p *Pages) renderUsers(w http.ResponseWriter, r *http.Request, current *url.URL, state model.FormState) {
	q := service.ParseUserQuery(current.Query())
	list, err := p.users.List(r.Context(), q)
	if err != nil {
		p.renderError(w, r, http.StatusInternalServerError, sectionUsers, "ユーザー一覧の取得に失敗しました")
		return
	}

	b := newBase(r, "ユーザー", sectionUsers)
	var actions func(model.UserSummary) []RowAction
	if b.Admin {
		actions = func(u model.UserSummary) []RowAction {
			id := u.ID.String()
			return []RowAction{
				{Label: "編集", Href: "/users/" + id + "/edit"},
				{Delete: NewDeleteModal(deleteURL("/users/"+id+"/delete", current), id, u.Name)},
			}
		}
	}

	p.render(w, http.StatusOK, "users.html", usersData{
		base:   b,
		Search: q.Search,
		Role:   q.Role,
		Table:  NewTable(userColumns, list.Users, actions, list.Pagination, current),
		State:  state,
	})
}

// deleteURL carries the list query along so the list can be redisplayed as
// it was.
func deleteURL(action string, current *url.URL) string {
	if current.RawQuery == "" {
		return action
	}
	return action + "?" + current.RawQuery
}

type userFormData struct {
	base
	Heading string
	Action  string
	Editing bool
	Values  url.Values
	State   model.FormState
}

// NewUser handles GET /users/new.
func (p *Pages) NewUser(w http.ResponseWriter, r *http.Request) {
	p.renderUserForm(w, r, url.Values{"role": {model.RoleUser}}, model.FormState{}, "")
}

// CreateUser handles POST /users/new.
func (p *Pages) CreateUser(w http.ResponseWriter, r *http.Request) {
	form, ok := p.parseForm(w, r, sectionUsers)
	if !ok {
		return
	}

	state := p.userActions.Create(r.Context(), model.FormState{}, form)
	if state.Success {
		form = url.Values{"role": {model.RoleUser}}
	}
	form.Del("password")
	p.renderUserForm(w, r, form, state, "")
}

// EditUser handles GET /users/{id}/edit.
func (p *Pages) EditUser(w http.ResponseWriter, r *http.Request) {
	user, ok := p.loadUser(w, r)
	if !ok {
		return
	}

	p.renderUserForm(w, r, url.Values{
		"name":  {user.Name},
		"email": {user.Email},
		"role":  {user.Role},
	}, model.FormState{}, user.ID.String())
}

// UpdateUser handles POST /users/{id}/edit.
func (p *Pages) UpdateUser(w http.ResponseWriter, r *http.Request) {
	form, ok := p.parseForm(w, r, sectionUsers)
	if !ok {
		return
	}
	id := r.PathValue("id")
	form.Set("id", id)

	state := p.userActions.Update(r.Context(), model.FormState{}, form)
	p.renderUserForm(w, r, form, state, id)
}

func (p *Pages) renderUserForm(w http.ResponseWriter, r *http.Request, values url.Values, state model.FormState, id string) {
	data := userFormData{
		base:    newBase(r, "ユーザー作成", sectionUsers),
		Heading: "新規ユーザー作成",
		Action:  "/users/new",
		Values:  values,
		State:   state,
	}
	if id != "" {
		data.Title = "ユーザー編集"
		data.Heading = "ユーザー編集"
		data.Action = "/users/" + id + "/edit"
		data.Editing = true
	}
	p.render(w, http.StatusOK, "user_form.html", data)
}

type userDetailData struct {
	base
	User     *model.UserDetail
	Products Table
	Delete   *DeleteModal
}

var ownedProductColumns = []Column[model.Product]{
	{Header: "商品名", Value: func(pr model.Product) string { return pr.Name }, Link: func(pr model.Product) string { return "/products/" + pr.ID.String() }},
	{Header: "カテゴリ", Value: func(pr model.Product) string { return deref(pr.Category) }},
	{Header: "価格", Value: func(pr model.Product) string { return formatPrice(pr.Price) }},
	{Header: "在庫", Value: func(pr model.Product) string { return strconv.Itoa(pr.Stock) }},
}

// User handles GET /users/{id}.
func (p *Pages) User(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		p.renderError(w, r, http.StatusNotFound, sectionUsers, msgUserNotFound)
		return
	}

	user, err := p.users.Get(r.Context(), id)
	if err != nil {
		p.userLoadFailed(w, r, err)
		return
	}

	b := newBase(r, user.Name, sectionUsers)
	data := userDetailData{
		base:     b,
		User:     user,
		Products: NewTable(ownedProductColumns, user.Products, nil, model.Pagination{}, nil),
	}
	if b.Admin {
		data.Delete = NewDeleteModal("/users/"+id.String()+"/delete", id.String(), user.Name)
	}
	p.render(w, http.StatusOK, "user_detail.html", data)
}

// DeleteUser handles POST /users/{id}/delete. Success redirects to the list;
// a refusal redisplays the list with the reason.
func (p *Pages) DeleteUser(w http.ResponseWriter, r *http.Request) {
	form, ok := p.parseForm(w, r, sectionUsers)
	if !ok {
		return
	}
	form.Set("id", r.PathValue("id"))

	state := p.userActions.Delete(r.Context(), model.FormState{}, form)
	if state.Success {
		http.Redirect(w, r, deleteURL("/users", r.URL), http.StatusSeeOther)
		return
	}
	p.renderUsers(w, r, &url.URL{Path: "/users", RawQuery: r.URL.RawQuery}, state)
}

func (p *Pages) loadUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		p.renderError(w, r, http.StatusNotFound, sectionUsers, msgUserNotFound)
		return nil, false
	}

	detail, err := p.users.Get(r.Context(), id)
	if err != nil {
		p.userLoadFailed(w, r, err)
		return nil, false
	}
	return &detail.User, true
}

func (p *Pages) userLoadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if model.IsDomainError(err, model.ErrCodeUserNotFound) {
		p.renderError(w, r, http.StatusNotFound, sectionUsers, msgUserNotFound)
		return
	}
	p.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to load user")
	p.renderError(w, r, http.StatusInternalServerError, sectionUsers, "ユーザー情報の取得に失敗しました")
}
