package domain

import "fmt"

// User is identified by its username inside a site, two values are the same user iff they are ==
type User struct {
	Site     string
	Username string
}

func New(site, username string) User {
	return User{Site: site, Username: username}
}

func (u User) String() string {
	return fmt.Sprintf("%s/%s", u.Site, u.Username)
}
