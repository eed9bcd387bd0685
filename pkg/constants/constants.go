package constants

// ChunkSize is the page size of the chunked employee listing.
const ChunkSize = 50

const (
	EmployeeStatusActive = "active"
	DefaultWorkingHours  = "0"
	UnknownBloodGroup    = "NA"
)

// AvatarPalette is indexed by a hash of the employee id.
var AvatarPalette = []string{"#E74694", "#00B4D8", "#FF9E00", "#2EC4B6", "#E71D36", "#FF9F1C"}

type UploadContext string

const (
	UploadContextProfilePhoto   UploadContext = "profile_photo"
	UploadContextEmployeeImport UploadContext = "employee_import"
	UploadContextIntercomImport UploadContext = "intercom_import"
)

func (uc UploadContext) String() string {
	return string(uc)
}

// Redis key formats.
const (
	// login_attempts:<empID> -> failed login count
	CacheKeyLoginAttempts = "login_attempts:%d"
	// lockout:<empID> -> "locked"
	CacheKeyLockout = "lockout:%d"
	// otp_requests:<empID> -> OTP sends within the lockout window
	CacheKeyOTPRequests = "otp_requests:%d"
	// otp_verified:<empID> -> set after a successful OTP verification
	CacheKeyOTPVerified = "otp_verified:%d"

	CacheKeyStatsDivision   = "stats:division"
	CacheKeyStatsGender     = "stats:gender_by_function"
	CacheKeyStatsBloodGroup = "stats:blood_group"
)

// StatsCacheKeys lists every cached dashboard aggregate.
var StatsCacheKeys = []string{CacheKeyStatsDivision, CacheKeyStatsGender, CacheKeyStatsBloodGroup}

// OTP mail.
const (
	OTPMailSubject = "Your OTP for IOCL Dashboard"
	OTPLength      = 6
)

// BirthdayWindowDays is how long after the birthday the greeting stays active.
const (
	BirthdayWindowDays       = 5
	BirthdayMessageRetention = 7
)

// RequestDateLayout formats edit request timestamps in listings.
const RequestDateLayout = "2006-01-02 15:04:05"
