// Package entitlement вычисляет эффективный уровень доступа пользователя
// на каждый запрос. Уровень складывается из сохранённой роли, даты истечения
// премиум-доступа и метки начала бесплатного окна, живущей в сессии браузера.
//
// Бесплатное окно привязано к созданию сессии, а не к дате регистрации:
// новая сессия запускает отсчёт заново, даже если прошлая уже истекла.
// Премиум с прошедшей датой истечения не считается ошибкой — он оценивается
// как обычное бесплатное окно, запись в хранилище при этом не меняется.
package entitlement

import (
	"time"

	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// TrialWindow — длительность бесплатного окна одной сессии.
const TrialWindow = 30 * time.Minute

// PremiumTerm — срок премиум-доступа, выдаваемого при подтверждении оплаты.
const PremiumTerm = 30 * 24 * time.Hour

// Kind — вариант эффективного доступа.
type Kind int

const (
	// Admin — неограниченный доступ администратора.
	Admin Kind = iota
	// PremiumActive — оплаченный доступ с непросроченной датой истечения.
	PremiumActive
	// FreeTrial — бесплатное окно сессии, в том числе для просроченного премиума.
	FreeTrial
)

// Access — результат оценки доступа для текущего запроса.
// MinutesRemaining и Expired заполняются только для FreeTrial.
type Access struct {
	Kind             Kind
	MinutesRemaining int
	Expired          bool
}

// Evaluate возвращает эффективный доступ по сохранённой роли, дате истечения
// премиума, метке начала бесплатного окна и текущему времени.
//
// Правило границы: окно считается истёкшим строго после TrialWindow
// (elapsed > 30m), остаток минут округляется вниз и не бывает отрицательным.
// Ровно на тридцатой минуте остаток равен нулю, но окно ещё не истекло.
// Отсутствующая метка trialStart трактуется как "сейчас" — вызывающая сторона
// обязана записать её в сессию (это делает access gate).
func Evaluate(role string, expiresAt, trialStart *time.Time, now time.Time) Access {
	if role == models.RoleAdmin {
		return Access{Kind: Admin}
	}
	if role == models.RolePremium && expiresAt != nil && expiresAt.After(now) {
		return Access{Kind: PremiumActive}
	}

	start := now
	if trialStart != nil {
		start = *trialStart
	}
	elapsed := now.Sub(start)
	remaining := TrialWindow - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Access{
		Kind:             FreeTrial,
		MinutesRemaining: int(remaining / time.Minute),
		Expired:          elapsed > TrialWindow,
	}
}

// Allows сообщает, достаточно ли доступа для защищённого контента:
// админ, активный премиум или неистёкшее бесплатное окно.
func (a Access) Allows() bool {
	switch a.Kind {
	case Admin, PremiumActive:
		return true
	default:
		return !a.Expired
	}
}

// LandingPath возвращает стартовый маршрут после входа. Политика применяется
// один раз при логине: администратор попадает в админ-панель, активный премиум
// и обычный пользователь — на дашборд, просроченный премиум — на страницу
// оплаты. Нужна и сохранённая роль: по одному варианту FreeTrial просроченный
// премиум неотличим от свежего бесплатного окна.
func LandingPath(role string, a Access) string {
	switch {
	case a.Kind == Admin:
		return "/admin/users"
	case a.Kind == PremiumActive:
		return "/dashboard"
	case role == models.RolePremium || a.Expired:
		return "/premium"
	default:
		return "/dashboard"
	}
}
