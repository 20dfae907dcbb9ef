package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PlaceShipRequest is the request body for placing a ship.
// Orientation is "H" or "V".
type PlaceShipRequest struct {
	ShipKind    string `json:"ship_kind"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation string `json:"orientation"`
}

// FireShotRequest is the request body for firing at the opponent's board
type FireShotRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AddBotRequest is the request body for queueing a bot
type AddBotRequest struct {
	Strategy string `json:"strategy,omitempty"`
}
