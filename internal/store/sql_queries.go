package store

const (
	userColumns = `id, username, email, password_hash, secret_key, is_verified, created_at, updated_at`

	createUser = `INSERT INTO users (username, email, password_hash, secret_key)
    VALUES ($1, $2, $3, $4)
    RETURNING id, username, email, password_hash, secret_key, is_verified, created_at, updated_at;`

	findUserByUsername = `SELECT id, username, email, password_hash, secret_key, is_verified, created_at, updated_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT id, username, email, password_hash, secret_key, is_verified, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, username, email, password_hash, secret_key, is_verified, created_at, updated_at
    FROM users
    WHERE id = $1;`

	updateUser = `UPDATE users
    SET username = $1, email = $2, password_hash = $3, updated_at = NOW()
    WHERE id = $4
    RETURNING id, username, email, password_hash, secret_key, is_verified, created_at, updated_at;`

	markUserVerified = `UPDATE users
    SET is_verified = TRUE, updated_at = NOW()
    WHERE id = $1;`

	deleteUser = `DELETE FROM users
    WHERE id = $1;`

	// Resolves a label name to its row, creating it when missing. The no-op
	// DO UPDATE makes RETURNING yield the existing row on conflict, so the
	// whole get-or-create is a single atomic statement.
	getOrCreateLabel = `INSERT INTO labels (id, name) VALUES ($1, $2)
    ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
    RETURNING id, name;`

	createNote = `INSERT INTO notes (id, title, content, expiry, user_id)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, title, content, created_at, expiry, user_id;`

	attachLabel = `INSERT INTO note_label_association (note_id, label_id)
    VALUES ($1, $2)
    ON CONFLICT DO NOTHING;`

	detachAllLabels = `DELETE FROM note_label_association
    WHERE note_id = $1;`

	noteLabelsByOwner = `SELECT nla.note_id, l.id, l.name
    FROM note_label_association nla
    JOIN labels l ON l.id = nla.label_id
    JOIN notes n ON n.id = nla.note_id
    WHERE n.user_id = $1;`

	labelsForNote = `SELECT l.id, l.name
    FROM note_label_association nla
    JOIN labels l ON l.id = nla.label_id
    WHERE nla.note_id = $1
    ORDER BY l.name;`
)
