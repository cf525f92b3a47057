package constants

const (
	NotFound         = "{\"message\":\"We couldn't find this resource anywhere!\",\"error\":true}"
	NotFoundPage     = "{\"message\":\"This endpoint doesn't exist! Did you mean /api/vanity/{code} or /api/users/{id}?\",\"error\":true}"
	BadRequest       = "{\"message\":\"Something in this request isn't right!\",\"error\":true}"
	Unauthorized     = "{\"message\":\"The upstream bot credential on this instance was rejected. This is our fault, not yours!\",\"error\":true}"
	InternalError    = "{\"message\":\"Something went wrong on our end!\",\"error\":true}"
	MethodNotAllowed = "{\"message\":\"That method is not allowed for this endpoint!\",\"error\":true}"
	RateLimited      = "{\"message\":\"You're being rate limited!\",\"error\":true}"
	Success          = "{\"message\":\"Success!\",\"error\":false}"
)
