package common

// TokenCookieName is the cookie that carries the signed token between the
// login response and guarded requests.
const TokenCookieName = "token"

// RoleNormal is the only role this service ever grants.
const RoleNormal = "normal"
