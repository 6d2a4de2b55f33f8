package sqlinline

const QInsertAd = `--sql 78da8340-3286-47df-a27d-d4dc3078824d
insert into ads(id, user_id, campaign_id, headline, body_copy, call_to_action, status, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, nullif($2::text, '')::uuid, $3::text, $4::text, $5::text, 'draft', now(), now())
returning id;
`

const QSelectAdByID = `--sql fce4f6e3-8d70-4580-b6c6-4fad45800020
select id, user_id, campaign_id, headline, body_copy, call_to_action, status, created_at, updated_at
from ads
where id = $1::uuid
limit 1;
`

const QListAdsByUser = `--sql 6865db9e-5a8b-40e2-a954-0173501fbae6
select id, campaign_id, headline, body_copy, call_to_action, status, created_at, updated_at
from ads
where user_id = $1::uuid and status <> 'archived'
order by created_at desc
limit $2::int offset $3::int;
`

const QUpdateAd = `--sql ec41215f-0e4e-41bf-8008-78eb3782649a
update ads
set headline = $3::text, body_copy = $4::text, call_to_action = $5::text, status = $6::text, updated_at = now()
where id = $1::uuid and user_id = $2::uuid
returning id;
`

const QArchiveAd = `--sql 2632402c-dbd6-4b83-9ac4-a21606a1a816
update ads
set status = 'archived', updated_at = now()
where id = $1::uuid and user_id = $2::uuid
returning id;
`

const QListAdAssets = `--sql e60a51b1-f703-4b26-89fb-92117cf9b4c8
select a.id, a.storage_key, a.mime, a.bytes, a.width, a.height, a.created_at
from assets a
join generation_jobs j on j.id = a.job_id
where j.ad_id = $1::uuid and j.user_id = $2::uuid
order by a.created_at asc;
`
