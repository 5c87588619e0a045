package integration_test

const (
	TestUserFirstName = "Jamie"
	TestUserEmail     = "jamie@example.com"
	TestUserPassword  = "Test123!@#"

	// Matches the hall seeded by testdata/catalog_up.sql.
	TestHallRows       = 10
	TestHallSeatsInRow = 20
)
